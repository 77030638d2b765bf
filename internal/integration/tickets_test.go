package integration_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type TicketsTestSuite struct {
	BaseSuite
}

func TestTicketsSuite(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}
	suite.Run(t, new(TicketsTestSuite))
}

// setupCoreTestState reseeds the catalog, halls, performances and a handful
// of committed reservations, and drops every cached availability count.
func setupCoreTestState(t testing.TB, app *TestApp) {
	t.Helper()

	executeSQLFile(t, app.DB, "testdata/core_down.sql")
	executeSQLFile(t, app.DB, "testdata/core_up.sql")
	executeSQLFile(t, app.DB, "testdata/reservations_up.sql")

	require.NoError(t, app.Redis.FlushAll(context.Background()).Err())
	app.Mailer.Reset()
}

func (s *TicketsTestSuite) TestCreateTicket() {
	scenarios := []Scenario{
		{
			Name:           "returns 404 when the performance does not exist",
			Method:         "POST",
			URL:            "/tickets",
			Body:           bytes.NewBufferString(`{"row": 1, "seat": 1, "performanceId": 99, "reservationId": 1}`),
			ExpectedStatus: http.StatusNotFound,
			BeforeTestFunc: func(t testing.TB, app *TestApp) {
				setupCoreTestState(t, app)
			},
		},
		{
			Name:           "returns 422 when the seat lies outside the hall grid",
			Method:         "POST",
			URL:            "/tickets",
			Body:           bytes.NewBufferString(`{"row": 3, "seat": 1, "performanceId": 2, "reservationId": 1}`),
			ExpectedStatus: http.StatusUnprocessableEntity,
			ExpectedResponse: `{
				"message": "Requested seat does not exist in the hall",
				"validationErrors": [
					{"field": "row", "issue": "row must be between 1 and 2, got 3"}
				]
			}`,
		},
		{
			Name:           "commits a free seat",
			Method:         "POST",
			URL:            "/tickets",
			Body:           bytes.NewBufferString(`{"row": 2, "seat": 1, "performanceId": 2, "reservationId": 1}`),
			ExpectedStatus: http.StatusCreated,
			ExpectedResponse: `{
				"id": 5,
				"row": 2,
				"seat": 1,
				"performanceId": 2,
				"reservationId": 1
			}`,
		},
		{
			Name:           "refuses the same seat a second time",
			Method:         "POST",
			URL:            "/tickets",
			Body:           bytes.NewBufferString(`{"row": 2, "seat": 1, "performanceId": 2, "reservationId": 2}`),
			ExpectedStatus: http.StatusConflict,
			ExpectedResponse: `{
				"message": "One or more of the requested seats are already taken for this performance"
			}`,
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}
}

func (s *TicketsTestSuite) TestDeleteTicket() {
	setupCoreTestState(s.T(), s.app)

	scenarios := []Scenario{
		{
			Name:           "returns 404 for a ticket that does not exist",
			Method:         "DELETE",
			URL:            "/tickets/99",
			ExpectedStatus: http.StatusNotFound,
		},
		{
			Name:           "releases a committed seat",
			Method:         "DELETE",
			URL:            "/tickets/1",
			ExpectedStatus: http.StatusNoContent,
		},
		{
			Name:           "released seat can be booked again",
			Method:         "POST",
			URL:            "/tickets",
			Body:           bytes.NewBufferString(`{"row": 1, "seat": 1, "performanceId": 2, "reservationId": 2}`),
			ExpectedStatus: http.StatusCreated,
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}
}

// Many clients race for one seat; the unique constraint lets exactly one
// commit through.
func (s *TicketsTestSuite) TestConcurrentCommitsSameSeat() {
	setupCoreTestState(s.T(), s.app)

	const attempts = 16

	var wg sync.WaitGroup
	statuses := make(chan int, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			body := bytes.NewBufferString(`{"row": 10, "seat": 10, "performanceId": 1, "reservationId": 1}`)
			res, err := http.Post(s.server.URL+"/tickets", "application/json", body)
			if err != nil {
				statuses <- 0
				return
			}
			defer res.Body.Close()

			statuses <- res.StatusCode
		}()
	}

	wg.Wait()
	close(statuses)

	counts := map[int]int{}
	for status := range statuses {
		counts[status]++
	}

	assert.Equal(s.T(), 1, counts[http.StatusCreated], "exactly one commit must win, got %v", counts)
	assert.Equal(s.T(), attempts-1, counts[http.StatusConflict], "every loser must see a conflict, got %v", counts)
}

// Distinct seats do not contend with each other.
func (s *TicketsTestSuite) TestConcurrentCommitsDistinctSeats() {
	setupCoreTestState(s.T(), s.app)

	const attempts = 12

	var wg sync.WaitGroup
	statuses := make(chan int, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(seat int) {
			defer wg.Done()

			payload := fmt.Sprintf(`{"row": 15, "seat": %d, "performanceId": 1, "reservationId": 1}`, seat+1)
			res, err := http.Post(s.server.URL+"/tickets", "application/json", bytes.NewBufferString(payload))
			if err != nil {
				statuses <- 0
				return
			}
			defer res.Body.Close()

			statuses <- res.StatusCode
		}(i)
	}

	wg.Wait()
	close(statuses)

	for status := range statuses {
		assert.Equal(s.T(), http.StatusCreated, status)
	}
}
