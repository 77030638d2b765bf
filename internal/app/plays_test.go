package app

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dkaratas/theatre-reservation-system/api"
	"github.com/dkaratas/theatre-reservation-system/internal/domain"
	"github.com/dkaratas/theatre-reservation-system/internal/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PlaysTestSuite struct {
	suite.Suite
	app      *Application
	playRepo *mocks.MockPlayRepo
}

func (s *PlaysTestSuite) SetupTest() {
	s.playRepo = new(mocks.MockPlayRepo)

	s.app = newTestApplication(func(a *Application) {
		a.playRepo = s.playRepo
	})
}

func TestPlaysSuite(t *testing.T) {
	suite.Run(t, new(PlaysTestSuite))
}

func (s *PlaysTestSuite) TestGetPlays() {
	s.Run("should fail when genres filter is not a list of integers", func() {
		s.SetupTest()

		w, r := executeRequest(s.T(), http.MethodGet, "/plays?genres=drama", nil)
		s.app.Routes().ServeHTTP(w, r)

		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("should pass filters through to the repository", func() {
		s.SetupTest()

		wantFilters := domain.PlayFilters{
			Title:      "ham",
			GenreIDs:   []int{1, 2},
			ActorIDs:   []int{7},
			Pagination: domain.Pagination{Page: 2, PageSize: 5},
		}

		plays := []domain.Play{
			{
				ID:     1,
				Title:  "Hamlet",
				Actors: []domain.Actor{{ID: 7, FirstName: "Ian", LastName: "Holm"}},
				Genres: []domain.Genre{{ID: 1, Name: "Tragedy"}},
			},
		}
		metadata := domain.NewMetadata(6, 2, 5)

		s.playRepo.On("GetAll", mock.Anything, wantFilters).Return(plays, metadata, nil)

		w, r := executeRequest(s.T(), http.MethodGet, "/plays?title=ham&genres=1,2&actors=7&page=2&pageSize=5", nil)
		s.app.Routes().ServeHTTP(w, r)

		s.Equal(http.StatusOK, w.Code)

		var resp api.PlayListResponse
		s.NoError(json.NewDecoder(w.Body).Decode(&resp))
		s.Len(resp.Plays, 1)
		s.Equal("Ian Holm", resp.Plays[0].Actors[0].FullName)
		s.Equal(2, resp.Metadata.CurrentPage)
	})
}

func (s *PlaysTestSuite) TestGetPlayById() {
	s.Run("should fail when play does not exist", func() {
		s.SetupTest()
		s.playRepo.On("GetByID", mock.Anything, 9).Return(nil, domain.ErrRecordNotFound)

		w, r := executeRequest(s.T(), http.MethodGet, "/plays/9", nil)
		s.app.Routes().ServeHTTP(w, r)

		s.Equal(http.StatusNotFound, w.Code)
	})

	s.Run("should return play with cast and genres", func() {
		s.SetupTest()
		s.playRepo.On("GetByID", mock.Anything, 1).Return(&domain.Play{
			ID:          1,
			Title:       "Hamlet",
			Description: "The Prince of Denmark",
			Actors:      []domain.Actor{{ID: 7, FirstName: "Ian", LastName: "Holm"}},
			Genres:      []domain.Genre{{ID: 1, Name: "Tragedy"}},
		}, nil)

		w, r := executeRequest(s.T(), http.MethodGet, "/plays/1", nil)
		s.app.Routes().ServeHTTP(w, r)

		s.Equal(http.StatusOK, w.Code)

		var resp api.Play
		s.NoError(json.NewDecoder(w.Body).Decode(&resp))
		s.Equal("Hamlet", resp.Title)
		s.Len(resp.Actors, 1)
		s.Len(resp.Genres, 1)
	})
}

func (s *PlaysTestSuite) TestCreatePlay() {
	s.Run("should fail when title is missing", func() {
		s.SetupTest()

		w, r := executeRequest(s.T(), http.MethodPost, "/plays", api.CreatePlayRequest{Description: "x"})
		s.app.Routes().ServeHTTP(w, r)

		s.Equal(http.StatusUnprocessableEntity, w.Code)
	})

	s.Run("should fail when a referenced actor does not exist", func() {
		s.SetupTest()
		s.playRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrRecordNotFound)

		body := api.CreatePlayRequest{Title: "Hamlet", ActorIds: []int{99}}

		w, r := executeRequest(s.T(), http.MethodPost, "/plays", body)
		s.app.Routes().ServeHTTP(w, r)

		s.Equal(http.StatusUnprocessableEntity, w.Code)

		var errResp api.ErrorResponse
		s.NoError(json.NewDecoder(w.Body).Decode(&errResp))
		s.Equal("One or more referenced actors or genres do not exist", errResp.Message)
	})

	s.Run("should create play with valid input", func() {
		s.SetupTest()

		created := &domain.Play{
			ID:     4,
			Title:  "Hamlet",
			Actors: []domain.Actor{{ID: 7, FirstName: "Ian", LastName: "Holm"}},
			Genres: []domain.Genre{{ID: 1, Name: "Tragedy"}},
		}

		s.playRepo.On("Create", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				args.Get(1).(*domain.Play).ID = 4
			}).
			Return(nil)
		s.playRepo.On("GetByID", mock.Anything, 4).Return(created, nil)

		body := api.CreatePlayRequest{Title: "Hamlet", ActorIds: []int{7}, GenreIds: []int{1}}

		w, r := executeRequest(s.T(), http.MethodPost, "/plays", body)
		s.app.Routes().ServeHTTP(w, r)

		s.Equal(http.StatusCreated, w.Code)

		var resp api.Play
		s.NoError(json.NewDecoder(w.Body).Decode(&resp))
		s.Equal(4, resp.Id)
		s.Len(resp.Actors, 1)
	})
}
