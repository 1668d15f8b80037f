package reminders

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notexe/mcp-reminders/internal/store"
)

func callRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{Arguments: args},
	}
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", res.Content[0])
	return tc.Text
}

func TestHandleGetListsTool(t *testing.T) {
	fs := newFakeStore("Work")
	srv := NewServer(NewService(fs))

	res, err := srv.handleGetLists(context.Background(), callRequest(nil))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var names []string
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &names))
	assert.Contains(t, names, "Work")
	assert.Contains(t, names, "Smart: Overdue")
}

func TestHandleGetRemindersTool(t *testing.T) {
	fs := newFakeStore("Work")
	fs.add("l1", store.Item{Name: "thing", Body: composeBody("note", Metadata{Tags: []string{"x"}})})
	srv := NewServer(NewService(fs))

	res, err := srv.handleGetReminders(context.Background(), callRequest(map[string]any{
		"listName": "Work",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var records []Reminder
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "thing", records[0].Name)
	assert.Equal(t, "note", records[0].Notes)
	assert.Equal(t, []string{"x"}, records[0].Tags)
}

func TestHandleGetRemindersUnknownList(t *testing.T) {
	srv := NewServer(NewService(newFakeStore("Work")))

	res, err := srv.handleGetReminders(context.Background(), callRequest(map[string]any{
		"listName": "Missing",
	}))
	require.NoError(t, err, "failures are signaled in-result, not as handler errors")
	require.True(t, res.IsError)

	var payload map[string]string
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &payload))
	assert.Equal(t, "list not found", payload["error"])
	assert.Contains(t, payload["details"], "Missing")
}

func TestHandleCreateReminderTool(t *testing.T) {
	fs := newFakeStore("Work")
	srv := NewServer(NewService(fs))

	res, err := srv.handleCreateReminder(context.Background(), callRequest(map[string]any{
		"listName": "Work",
		"title":    "buy milk",
		"dueDate":  "2025-06-15",
		"flagged":  true,
		"priority": float64(3),
		"tags":     []any{"errands", "#errands", "Food"},
		"location": map[string]any{
			"title":     "Shop",
			"latitude":  float64(52.52),
			"longitude": float64(13.405),
			"proximity": "arriving",
		},
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	items := fs.items["l1"]
	require.Len(t, items, 1)
	assert.True(t, items[0].Flagged)
	assert.Equal(t, 3, items[0].Priority)

	notes, meta := decodeBody(items[0].Body)
	assert.Empty(t, notes)
	assert.Equal(t, []string{"errands", "Food"}, meta.Tags)
	require.NotNil(t, meta.Location)
	assert.Equal(t, "Shop", meta.Location.Title)
}

func TestHandleCreateReminderBadDueDate(t *testing.T) {
	srv := NewServer(NewService(newFakeStore("Work")))

	res, err := srv.handleCreateReminder(context.Background(), callRequest(map[string]any{
		"listName": "Work",
		"title":    "x",
		"dueDate":  "whenever",
	}))
	require.NoError(t, err)
	require.True(t, res.IsError)

	var payload map[string]string
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &payload))
	assert.Equal(t, "invalid input", payload["error"])
	assert.Contains(t, payload["details"], "whenever")
}

func TestHandleSetAttributesNullLocationClears(t *testing.T) {
	fs := newFakeStore("Work")
	fs.add("l1", store.Item{Name: "target", Body: composeBody("", Metadata{
		Location: &Location{Title: "Office"},
	})})
	srv := NewServer(NewService(fs))

	res, err := srv.handleSetAttributes(context.Background(), callRequest(map[string]any{
		"listName":     "Work",
		"reminderName": "target",
		"location":     nil,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	_, meta := decodeBody(fs.items["l1"][0].Body)
	assert.Nil(t, meta.Location)
}

func TestHandleCompleteReminderMissingTarget(t *testing.T) {
	srv := NewServer(NewService(newFakeStore("Work")))

	res, err := srv.handleCompleteReminder(context.Background(), callRequest(map[string]any{
		"listName":     "Work",
		"reminderName": "ghost",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, "a missing target is a normal result, not a failure")

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &payload))
	assert.Equal(t, false, payload["success"])
}

func TestHandleDeleteReminderTool(t *testing.T) {
	fs := newFakeStore("Work")
	fs.add("l1", store.Item{Name: "gone"})
	srv := NewServer(NewService(fs))

	res, err := srv.handleDeleteReminder(context.Background(), callRequest(map[string]any{
		"listName":     "Work",
		"reminderName": "gone",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Empty(t, fs.items["l1"])
}
