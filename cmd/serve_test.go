package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jsphweid/eartrainer/model"
	"github.com/jsphweid/eartrainer/trainer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTrainer(t *testing.T, seed int64) *trainer.Trainer {
	tables, err := trainer.DefaultTables()
	require.NoError(t, err)
	return trainer.New(tables, rand.New(rand.NewSource(seed)))
}

func do(t *testing.T, h http.Handler, method, path string, body any, out any) int {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	resp := w.Result()
	if out != nil {
		respBody, _ := io.ReadAll(resp.Body)
		require.NoError(t, json.Unmarshal(respBody, out), string(respBody))
	}
	return resp.StatusCode
}

func TestHandleTrainers(t *testing.T) {
	h := NewServer(newTestTrainer(t, 1)).Router()

	var res model.TrainersResponse
	assert := assert.New(t)
	assert.Equal(http.StatusOK, do(t, h, http.MethodGet, "/trainers", nil, &res))
	assert.Len(res.Drills, len(trainer.Drills()))
	for _, d := range res.Drills {
		if d.Name == "piano/interval" {
			assert.Equal([]string{"easy", "medium", "hard"}, d.Difficulties)
		}
		if d.Name == "drums/tempo" {
			assert.Empty(d.Difficulties)
		}
	}
}

func TestRoundOverHTTP(t *testing.T) {
	h := NewServer(newTestTrainer(t, 7)).Router()
	assert := assert.New(t)

	var created model.CreateSessionResponse
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/sessions", nil, &created))
	base := "/sessions/" + created.SessionId

	var round model.RoundResponse
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, base+"/rounds", model.StartRoundRequestBody{Drill: "piano/interval"}, &round))
	assert.Equal("piano", round.Category)
	assert.Len(round.Candidates, 4)
	assert.Len(round.Cues, 2)
	for _, c := range round.Cues {
		assert.Equal(model.CueNote, c.Kind)
		require.NotNil(t, c.Midi)
	}

	var answer model.AnswerResponse
	assert.Equal(http.StatusOK, do(t, h, http.MethodPost, base+"/answer", model.AnswerRequestBody{Label: round.Candidates[0]}, &answer))
	assert.True(answer.Graded)
	assert.Equal(round.Candidates[0], answer.ChosenLabel)
	assert.Equal(1, answer.Tally.Total)
	assert.Len(answer.Choices, 4)
	correct := 0
	for _, c := range answer.Choices {
		assert.False(c.Enabled)
		if c.Correct {
			correct++
			assert.Equal(answer.CorrectLabel, c.Label)
		}
	}
	assert.Equal(1, correct)

	// a second answer to the same round changes nothing
	var again model.AnswerResponse
	assert.Equal(http.StatusOK, do(t, h, http.MethodPost, base+"/answer", model.AnswerRequestBody{Label: round.Candidates[1]}, &again))
	assert.False(again.Graded)
	assert.Equal(1, again.Tally.Total)

	var scores model.ScoresResponse
	assert.Equal(http.StatusOK, do(t, h, http.MethodGet, base+"/scores", nil, &scores))
	assert.Equal(1, scores.Scores["piano"].Total)
	assert.Equal(0, scores.Scores["drums"].Total)

	var reset model.ScoresResponse
	assert.Equal(http.StatusOK, do(t, h, http.MethodPost, base+"/reset", nil, &reset))
	assert.Equal(model.ScoreTally{}, reset.Scores["piano"])

	assert.Equal(http.StatusNoContent, do(t, h, http.MethodDelete, base, nil, nil))
	assert.Equal(http.StatusNotFound, do(t, h, http.MethodGet, base+"/scores", nil, nil))
}

func TestStartRoundErrors(t *testing.T) {
	h := NewServer(newTestTrainer(t, 1)).Router()
	var created model.CreateSessionResponse
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/sessions", nil, &created))
	base := "/sessions/" + created.SessionId

	tests := []struct {
		name string
		body model.StartRoundRequestBody
	}{
		{"unknown drill", model.StartRoundRequestBody{Drill: "kazoo/solo"}},
		{"unknown difficulty", model.StartRoundRequestBody{Drill: "piano/interval", Difficulty: "brutal"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var res model.ErrorResponse
			assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, base+"/rounds", tt.body, &res))
			assert.NotEmpty(t, res.Error)
		})
	}

	var res model.ErrorResponse
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/sessions/nope/rounds", model.StartRoundRequestBody{Drill: "piano/chord"}, &res))
}

func TestAnswerWithoutRound(t *testing.T) {
	h := NewServer(newTestTrainer(t, 1)).Router()
	var created model.CreateSessionResponse
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/sessions", nil, &created))

	var answer model.AnswerResponse
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/sessions/"+created.SessionId+"/answer", model.AnswerRequestBody{Label: "Major 3rd"}, &answer))
	assert.False(t, answer.Graded)
	assert.Empty(t, answer.Choices)
}
