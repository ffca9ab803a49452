package extract_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/saulo-duarte/coach-lambda/internal/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fenced(body string) string {
	return "提案です。\n\n```json\n" + body + "\n```\n\nいかがでしょうか。"
}

func TestExtractOutcomes(t *testing.T) {
	ex := extract.NewFencedJSONExtractor()
	ctx := context.Background()

	tests := []struct {
		name    string
		text    string
		key     string
		outcome extract.Outcome
		records int
	}{
		{"NoFence", "まずは今の状況を教えてください。", extract.KeyGoals, extract.OutcomeNoFence, 0},
		{"FenceWithoutJSONTag", "```\n{\"goals\":[{\"title\":\"t\"}]}\n```", extract.KeyGoals, extract.OutcomeNoFence, 0},
		{"FenceWithoutNewlines", "```json{\"goals\":[]}```", extract.KeyGoals, extract.OutcomeNoFence, 0},
		{"InvalidJSON", fenced(`{"goals": [ {"title": "t", } ]`), extract.KeyGoals, extract.OutcomeInvalidJSON, 0},
		{"MissingKey", fenced(`{"tasks":[{"title":"t"}]}`), extract.KeyGoals, extract.OutcomeMissingKey, 0},
		{"KeyNotArray", fenced(`{"goals":{"title":"t"}}`), extract.KeyGoals, extract.OutcomeMissingKey, 0},
		{"KeyNull", fenced(`{"goals":null}`), extract.KeyGoals, extract.OutcomeMissingKey, 0},
		{"TopLevelArray", fenced(`[{"title":"t"}]`), extract.KeyGoals, extract.OutcomeMissingKey, 0},
		{"EmptyArray", fenced(`{"goals":[]}`), extract.KeyGoals, extract.OutcomeExtracted, 0},
		{"TwoRecords", fenced(`{"goals":[{"title":"a"},{"title":"b"}]}`), extract.KeyGoals, extract.OutcomeExtracted, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ex.Extract(ctx, tt.text, tt.key)
			assert.Equal(t, tt.outcome, p.Outcome)
			assert.Len(t, p.Records, tt.records)
			assert.Equal(t, tt.text, p.Message, "message must be returned unchanged")
			assert.Equal(t, tt.outcome == extract.OutcomeExtracted, p.Found())
		})
	}
}

func TestExtractInvalidJSONRecordsError(t *testing.T) {
	p := extract.NewFencedJSONExtractor().Extract(context.Background(), fenced(`{"goals": [`), extract.KeyGoals)
	assert.Error(t, p.ParseErr)
	assert.Empty(t, p.Records)
}

func TestExtractFirstBlockOnly(t *testing.T) {
	text := fenced(`{"goals":[{"title":"first"}]}`) + "\n" + fenced(`{"goals":[{"title":"second"},{"title":"third"}]}`)

	p := extract.NewFencedJSONExtractor().Extract(context.Background(), text, extract.KeyGoals)
	require.True(t, p.Found())

	goals := extract.NormalizeGoalSuggestions(p.Records)
	require.Len(t, goals, 1)
	assert.Equal(t, "first", goals[0].Title)
}

func TestExtractFirstBlockInvalidDoesNotFallBack(t *testing.T) {
	text := fenced(`not json`) + "\n" + fenced(`{"goals":[{"title":"ok"}]}`)

	p := extract.NewFencedJSONExtractor().Extract(context.Background(), text, extract.KeyGoals)
	assert.Equal(t, extract.OutcomeInvalidJSON, p.Outcome)
	assert.Empty(t, p.Records)
}

func TestExtractIsIdempotent(t *testing.T) {
	ex := extract.NewFencedJSONExtractor()
	text := fenced(`{"tasks":[{"goalId":"g1","title":"T","description":"D","estimatedTime":30},{"title":"x"}]}`)

	first := extract.NormalizeGeneratedTasks(ex.Extract(context.Background(), text, extract.KeyTasks).Records)
	second := extract.NormalizeGeneratedTasks(ex.Extract(context.Background(), text, extract.KeyTasks).Records)
	assert.Equal(t, first, second)
}

func TestGoalSuggestionDefaults(t *testing.T) {
	p := extract.NewFencedJSONExtractor().Extract(context.Background(), fenced(`{"goals":[{"title":"t"}]}`), extract.KeyGoals)
	goals := extract.NormalizeGoalSuggestions(p.Records)

	require.Len(t, goals, 1)
	assert.Equal(t, extract.GoalSuggestion{Title: "t", Description: "", Priority: "medium"}, goals[0])
}

func TestGoalSuggestionNormalization(t *testing.T) {
	records := []json.RawMessage{
		json.RawMessage(`{"title":"英語","why":"海外で働きたい","priority":"HIGH"}`),
		json.RawMessage(`{"title":"筋トレ","description":"健康のため","why":"ignored","priority":"low"}`),
		json.RawMessage(`{"title":"読書","priority":"urgent"}`),
		json.RawMessage(`"just a string"`),
		json.RawMessage(`null`),
		json.RawMessage(`{"title":42}`),
	}

	goals := extract.NormalizeGoalSuggestions(records)
	require.Len(t, goals, 6, "malformed records must not drop siblings")

	assert.Equal(t, "海外で働きたい", goals[0].Description)
	assert.Equal(t, "high", goals[0].Priority)
	assert.Equal(t, "健康のため", goals[1].Description)
	assert.Equal(t, "low", goals[1].Priority)
	assert.Equal(t, "medium", goals[2].Priority)
	assert.Equal(t, extract.GoalSuggestion{Priority: "medium"}, goals[3])
	assert.Equal(t, extract.GoalSuggestion{Priority: "medium"}, goals[4])
	assert.Equal(t, "42", goals[5].Title)
}

func TestGeneratedTaskDefaults(t *testing.T) {
	p := extract.NewFencedJSONExtractor().Extract(context.Background(),
		fenced(`{"tasks":[{"goalId":"g1","title":"T","description":"D"}]}`), extract.KeyTasks)
	tasks := extract.NormalizeGeneratedTasks(p.Records)

	require.Len(t, tasks, 1)
	assert.Equal(t, extract.GeneratedTask{GoalID: "g1", Title: "T", Description: "D", EstimatedTime: 60}, tasks[0])
}

func TestGeneratedTaskEstimatedTime(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{`{"estimatedTime":45}`, 45},
		{`{"estimatedTime":29.6}`, 30},
		{`{"estimatedTime":"90"}`, 90},
		{`{"estimatedTime":0}`, 60},
		{`{"estimatedTime":-15}`, 60},
		{`{"estimatedTime":"soon"}`, 60},
		{`{"estimatedTime":true}`, 60},
		{`{"estimatedTime":5e18}`, extract.MaxEstimatedMinutes},
		{`{"estimatedTime":"1e300"}`, extract.MaxEstimatedMinutes},
		{`{}`, 60},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			tasks := extract.NormalizeGeneratedTasks([]json.RawMessage{json.RawMessage(tt.raw)})
			require.Len(t, tasks, 1)
			assert.Equal(t, tt.want, tasks[0].EstimatedTime)
		})
	}
}

func TestGeneratedTaskNumericGoalID(t *testing.T) {
	tasks := extract.NormalizeGeneratedTasks([]json.RawMessage{json.RawMessage(`{"goalId":3,"title":"T"}`)})
	require.Len(t, tasks, 1)
	assert.Equal(t, "3", tasks[0].GoalID)
}

func TestRoundTrip(t *testing.T) {
	ex := extract.NewFencedJSONExtractor()

	t.Run("Goals", func(t *testing.T) {
		original := []extract.GoalSuggestion{
			{Title: "TOEIC 800点", Description: "転職に必要", Priority: "high"},
			{Title: "毎朝ストレッチ", Description: "", Priority: "medium"},
		}
		block, err := extract.Fence(extract.KeyGoals, original)
		require.NoError(t, err)

		got := extract.NormalizeGoalSuggestions(ex.Extract(context.Background(), block, extract.KeyGoals).Records)
		assert.Equal(t, original, got)
	})

	t.Run("Tasks", func(t *testing.T) {
		original := []extract.GeneratedTask{
			{GoalID: "g1", Title: "単語帳 50語", Description: "アプリで復習", EstimatedTime: 30},
			{GoalID: "g2", Title: "ジョギング", Description: "5km", EstimatedTime: 45},
		}
		block, err := extract.Fence(extract.KeyTasks, original)
		require.NoError(t, err)

		got := extract.NormalizeGeneratedTasks(ex.Extract(context.Background(), block, extract.KeyTasks).Records)
		assert.Equal(t, original, got)
	})
}

func TestMustFence(t *testing.T) {
	block := extract.MustFence(extract.KeyTasks, []extract.GeneratedTask{{GoalID: "<id>", Title: "a&b"}})
	assert.True(t, strings.HasPrefix(block, "```json\n{"))
	assert.True(t, strings.HasSuffix(block, "}\n```"))
	assert.Contains(t, block, `"goalId": "<id>"`)
	assert.Contains(t, block, `"title": "a&b"`)

	assert.Panics(t, func() { extract.MustFence(extract.KeyTasks, make(chan int)) })
}
