package cmd

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/bep/debounce"
	"github.com/gorilla/mux"
	"github.com/jsphweid/eartrainer/constants"
	"github.com/jsphweid/eartrainer/logger"
	"github.com/jsphweid/eartrainer/model"
	"github.com/jsphweid/eartrainer/quiz"
	"github.com/jsphweid/eartrainer/session"
	"github.com/jsphweid/eartrainer/trainer"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

const sessionMaxIdle = 2 * time.Hour

var serveSeed int64

func init() {
	serveCmd.Flags().Int64Var(&serveSeed, "seed", 0, "random seed (0 uses the clock)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the quiz over HTTP",
	Long:  `Serves a JSON API a browser UI can drive. The browser plays the returned cues.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

type Server struct {
	trainer *trainer.Trainer
	store   *session.Store
	graded  int64
}

// NewServer wires a session store to tr. Score snapshots are logged once
// answers stop coming in for a moment.
func NewServer(tr *trainer.Trainer) *Server {
	srv := &Server{trainer: tr}
	snapshot := debounce.New(constants.ScoreSnapshotDelay)
	srv.store = session.NewStore(tr, func(sessionId string, o quiz.Outcome) {
		atomic.AddInt64(&srv.graded, 1)
		logger.Debug("round graded", logger.Fields{
			"session_id": sessionId,
			"category":   o.Category,
			"correct":    o.IsCorrect,
		})
		snapshot(srv.logSnapshot)
	})
	return srv
}

func (srv *Server) logSnapshot() {
	logger.Info("score snapshot", logger.Fields{
		"sessions": srv.store.Len(),
		"graded":   atomic.LoadInt64(&srv.graded),
	})
}

func (srv *Server) Router() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/trainers", srv.handleTrainers).Methods("GET")
	router.HandleFunc("/sessions", srv.handleCreateSession).Methods("POST")
	router.HandleFunc("/sessions/{id}", srv.handleDeleteSession).Methods("DELETE")
	router.HandleFunc("/sessions/{id}/rounds", srv.handleStartRound).Methods("POST")
	router.HandleFunc("/sessions/{id}/answer", srv.handleAnswer).Methods("POST")
	router.HandleFunc("/sessions/{id}/scores", srv.handleScores).Methods("GET")
	router.HandleFunc("/sessions/{id}/reset", srv.handleReset).Methods("POST")

	c := cors.New(cors.Options{
		AllowedOrigins: constants.GetAllowedOrigins(),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(router)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn("could not write response", logger.Fields{"error": err.Error()})
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func (srv *Server) lookup(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := mux.Vars(r)["id"]
	s, ok := srv.store.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "no session "+id)
	}
	return s, ok
}

func (srv *Server) handleTrainers(w http.ResponseWriter, r *http.Request) {
	var res model.TrainersResponse
	for _, d := range trainer.Drills() {
		info := model.DrillInfo{Name: d.Name, Category: d.Category}
		if d.UsesDifficulty {
			info.Difficulties = srv.trainer.Tables().DifficultyNames()
		}
		res.Drills = append(res.Drills, info)
	}
	writeJSON(w, http.StatusOK, res)
}

func (srv *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	s := srv.store.Create()
	writeJSON(w, http.StatusCreated, model.CreateSessionResponse{SessionId: s.Id})
}

func (srv *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if _, ok := srv.lookup(w, r); !ok {
		return
	}
	srv.store.Delete(mux.Vars(r)["id"])
	w.WriteHeader(http.StatusNoContent)
}

func (srv *Server) handleStartRound(w http.ResponseWriter, r *http.Request) {
	s, ok := srv.lookup(w, r)
	if !ok {
		return
	}
	var input model.StartRoundRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "could not decode request body: "+err.Error())
		return
	}

	round, err := s.StartRound(input.Drill, input.Difficulty)
	var unknownDrill *trainer.UnknownDrillError
	var unknownDifficulty *trainer.UnknownDifficultyError
	switch {
	case errors.As(err, &unknownDrill), errors.As(err, &unknownDifficulty):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		logger.Error("could not start round", err, logger.Fields{"session_id": s.Id, "drill": input.Drill})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	res := model.RoundResponse{
		RoundId:    round.Id,
		Category:   round.Prompt.Category,
		Drill:      round.Prompt.Drill,
		Candidates: round.Prompt.Candidates,
		Cues:       make([]model.CueResponse, 0, len(round.Prompt.Cues)),
	}
	for _, c := range round.Prompt.Cues {
		res.Cues = append(res.Cues, model.NewCueResponse(c))
	}
	writeJSON(w, http.StatusOK, res)
}

func (srv *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	s, ok := srv.lookup(w, r)
	if !ok {
		return
	}
	var input model.AnswerRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "could not decode request body: "+err.Error())
		return
	}

	a := s.Answer(input.Label)
	writeJSON(w, http.StatusOK, model.AnswerResponse{
		Graded:       a.Graded,
		IsCorrect:    a.Outcome.IsCorrect,
		CorrectLabel: a.Outcome.CorrectLabel,
		ChosenLabel:  a.Outcome.ChosenLabel,
		Choices:      a.Choices,
		Tally:        a.Tally,
	})
}

func (srv *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	s, ok := srv.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, model.ScoresResponse{Scores: s.Scores()})
}

func (srv *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s, ok := srv.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, model.ScoresResponse{Scores: s.Reset()})
}

func (srv *Server) expireLoop(every time.Duration) {
	for range time.Tick(every) {
		if n := srv.store.Expire(sessionMaxIdle); n > 0 {
			logger.Info("expired idle sessions", logger.Fields{"count": n})
		}
	}
}

func serve() error {
	tr, err := newTrainer(serveSeed)
	if err != nil {
		return err
	}
	srv := NewServer(tr)
	go srv.expireLoop(time.Minute)

	addr := ":" + constants.GetPort()
	logger.Info("starting server", logger.Fields{"addr": addr, "environment": constants.GetEnvironment()})
	return http.ListenAndServe(addr, srv.Router())
}
