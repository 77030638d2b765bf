package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSeat(t *testing.T) {
	hall := Hall{ID: 1, Name: "Main Stage", Rows: 10, SeatsPerRow: 12}

	tests := []struct {
		name       string
		row        int
		seat       int
		wantFields []string
	}{
		{name: "first seat of the hall", row: 1, seat: 1},
		{name: "last seat of the hall", row: 10, seat: 12},
		{name: "middle of the hall", row: 5, seat: 6},
		{name: "row zero", row: 0, seat: 1, wantFields: []string{"row"}},
		{name: "row above range", row: 11, seat: 1, wantFields: []string{"row"}},
		{name: "seat zero", row: 1, seat: 0, wantFields: []string{"seat"}},
		{name: "seat above range", row: 1, seat: 13, wantFields: []string{"seat"}},
		{name: "negative row and seat", row: -1, seat: -1, wantFields: []string{"row", "seat"}},
		{name: "both above range", row: 20, seat: 30, wantFields: []string{"row", "seat"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSeat(hall, tt.row, tt.seat)

			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				assert.True(t, hall.Contains(tt.row, tt.seat))
				return
			}

			var invalidSeat *InvalidSeatError
			require.ErrorAs(t, err, &invalidSeat)
			require.Len(t, invalidSeat.Fields, len(tt.wantFields))

			for i, field := range tt.wantFields {
				assert.Equal(t, field, invalidSeat.Fields[i].Field)
			}
			assert.False(t, hall.Contains(tt.row, tt.seat))
		})
	}
}

func TestValidateSeat_FieldErrorRanges(t *testing.T) {
	hall := Hall{Rows: 2, SeatsPerRow: 3}

	err := ValidateSeat(hall, 5, 9)

	var invalidSeat *InvalidSeatError
	require.True(t, errors.As(err, &invalidSeat))
	require.Len(t, invalidSeat.Fields, 2)

	row := invalidSeat.Fields[0]
	assert.Equal(t, 1, row.Min)
	assert.Equal(t, 2, row.Max)
	assert.Equal(t, 5, row.Value)

	seat := invalidSeat.Fields[1]
	assert.Equal(t, 1, seat.Min)
	assert.Equal(t, 3, seat.Max)
	assert.Equal(t, 9, seat.Value)

	assert.Equal(t, "row must be between 1 and 2, got 5; seat must be between 1 and 3, got 9", err.Error())
}

func TestHallCapacity(t *testing.T) {
	tests := []struct {
		name string
		hall Hall
		want int
	}{
		{name: "single seat", hall: Hall{Rows: 1, SeatsPerRow: 1}, want: 1},
		{name: "small studio", hall: Hall{Rows: 2, SeatsPerRow: 2}, want: 4},
		{name: "main stage", hall: Hall{Rows: 25, SeatsPerRow: 40}, want: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.hall.Capacity())
		})
	}
}
