package quiz

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustQuestion(t *testing.T, topic string, correct Label) Question {
	t.Helper()
	set, err := NewOptionSet(capitals, correct)
	require.NoError(t, err)
	return Question{Text: "Capital of " + topic + "?", Choices: set, Topic: topic, Difficulty: Medium}
}

func TestGrade(t *testing.T) {
	qs := []Question{
		mustQuestion(t, "France", LabelA),
		mustQuestion(t, "Germany", LabelB),
		mustQuestion(t, "Spain", LabelC),
	}
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	rec, err := Grade("u1", qs, map[int]Label{0: LabelA, 1: LabelD}, now)
	require.NoError(t, err)

	assert.Equal(t, 1, rec.Correct)
	assert.Equal(t, 1, rec.Wrong)
	assert.False(t, rec.Questions[2].Answered())
	assert.Equal(t, now, rec.CreatedAt)
}

func TestGrade_RejectsBadInput(t *testing.T) {
	qs := []Question{mustQuestion(t, "France", LabelA)}

	_, err := Grade("u1", qs, map[int]Label{3: LabelA}, time.Now())
	assert.Error(t, err)

	_, err = Grade("u1", qs, map[int]Label{0: "Q"}, time.Now())
	assert.Error(t, err)

	_, err = Grade("", qs, nil, time.Now())
	assert.Error(t, err)
}

func TestValidate_CountMismatch(t *testing.T) {
	rec, err := Grade("u1", []Question{mustQuestion(t, "France", LabelA)}, map[int]Label{0: LabelA}, time.Now())
	require.NoError(t, err)

	rec.Wrong = 3
	var ve *ValidationError
	assert.True(t, errors.As(rec.Validate(), &ve))
}

func TestEncodeDecode(t *testing.T) {
	rec, err := Grade("u1", []Question{
		mustQuestion(t, "France", LabelA),
		mustQuestion(t, "", LabelB),
	}, map[int]Label{0: LabelA}, time.Now())
	require.NoError(t, err)

	enc, err := rec.Encode()
	require.NoError(t, err)
	enc.ID = 9

	got, err := enc.Decode()
	require.NoError(t, err)
	assert.Equal(t, int64(9), got.ID)
	assert.Equal(t, rec.Questions, got.Questions)
}

func TestDecode_ParseError(t *testing.T) {
	enc := EncodedRecord{ID: 4, Payload: []byte(`{"not":"a list"}`)}
	_, err := enc.Decode()

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, int64(4), pe.RecordID)
}

func TestDecode_UnknownUserAnswer(t *testing.T) {
	payload := `[{"question":"Capital of France?","choices":{"options":["Paris","Rome","Oslo","Bern"],"correct_answer":"A"},"user_answer":"E"}]`
	enc := EncodedRecord{ID: 7, Payload: []byte(payload)}
	_, err := enc.Decode()

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, int64(7), pe.RecordID)
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}
