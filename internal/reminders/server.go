package reminders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"
)

const (
	serverName    = "mcp-reminders"
	serverVersion = "1.0.0"
)

// Server is the MCP server exposing the reminder operations as tools.
type Server struct {
	mcpServer *server.MCPServer
	svc       *Service
}

// NewServer creates the MCP server for the given service.
func NewServer(svc *Service) *Server {
	s := &Server{
		svc: svc,
	}

	s.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
	)

	s.registerTools()
	return s
}

// MCPServer returns the underlying MCP server for serving.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

func (s *Server) registerTools() {
	// get_lists
	s.mcpServer.AddTool(
		mcp.NewTool("get_lists",
			mcp.WithDescription("Get all reminder lists, including the read-only smart lists (prefixed with 'Smart: ')"),
		),
		s.handleGetLists,
	)

	// get_reminders
	s.mcpServer.AddTool(
		mcp.NewTool("get_reminders",
			mcp.WithDescription("Get the reminders of a list. Accepts real list names and smart lists like 'Today', 'Overdue' or 'Smart: All'"),
			mcp.WithString("listName", mcp.Required(), mcp.Description("List name (real or smart)")),
		),
		s.handleGetReminders,
	)

	// create_reminder
	s.mcpServer.AddTool(
		mcp.NewTool("create_reminder",
			mcp.WithDescription("Create a reminder in a real list (smart lists are read-only)"),
			mcp.WithString("listName", mcp.Required(), mcp.Description("Target list name")),
			mcp.WithString("title", mcp.Required(), mcp.Description("Reminder title")),
			mcp.WithString("dueDate", mcp.Description("Due date: RFC3339, '2006-01-02 15:04:05' or '2006-01-02'")),
			mcp.WithString("notes", mcp.Description("Free-text notes")),
			mcp.WithBoolean("flagged", mcp.Description("Flag the reminder")),
			mcp.WithNumber("priority", mcp.Description("Priority 0-9 (0 = none)")),
			mcp.WithArray("tags", mcp.Description("Tags, e.g. [\"work\", \"urgent\"]")),
			mcp.WithObject("location", mcp.Description("Geofence: {title?, latitude?, longitude?, radius?, proximity? ('arriving'|'leaving')}")),
		),
		s.handleCreateReminder,
	)

	// get_tags
	s.mcpServer.AddTool(
		mcp.NewTool("get_tags",
			mcp.WithDescription("Get the tags used in one list, or across all lists when no list is given"),
			mcp.WithString("listName", mcp.Description("Optional list name (real or smart)")),
		),
		s.handleGetTags,
	)

	// set_attributes
	s.mcpServer.AddTool(
		mcp.NewTool("set_attributes",
			mcp.WithDescription("Update attributes of the first reminder matching a name. Omitted fields stay untouched; tags: [] clears tags; location: null clears the location"),
			mcp.WithString("listName", mcp.Required(), mcp.Description("List name (real or smart)")),
			mcp.WithString("reminderName", mcp.Required(), mcp.Description("Exact reminder name")),
			mcp.WithBoolean("flagged", mcp.Description("New flagged state")),
			mcp.WithNumber("priority", mcp.Description("New priority 0-9")),
			mcp.WithArray("tags", mcp.Description("New tags (empty array clears)")),
			mcp.WithObject("location", mcp.Description("New geofence, or null to clear")),
		),
		s.handleSetAttributes,
	)

	// complete_reminder
	s.mcpServer.AddTool(
		mcp.NewTool("complete_reminder",
			mcp.WithDescription("Mark the first reminder matching a name as completed"),
			mcp.WithString("listName", mcp.Required(), mcp.Description("List name (real or smart)")),
			mcp.WithString("reminderName", mcp.Required(), mcp.Description("Exact reminder name")),
		),
		s.handleCompleteReminder,
	)

	// delete_reminder
	s.mcpServer.AddTool(
		mcp.NewTool("delete_reminder",
			mcp.WithDescription("Delete the first reminder matching a name"),
			mcp.WithString("listName", mcp.Required(), mcp.Description("List name (real or smart)")),
			mcp.WithString("reminderName", mcp.Required(), mcp.Description("Exact reminder name")),
		),
		s.handleDeleteReminder,
	)
}

// toolError shapes a failure as {"error", "details"} JSON inside an
// error-flagged result, so callers always receive parseable JSON.
func toolError(summary string, err error) *mcp.CallToolResult {
	payload := map[string]string{"error": summary}
	if err != nil {
		payload["details"] = err.Error()
	}
	b, _ := json.Marshal(payload)
	return mcp.NewToolResultError(string(b))
}

func toolJSON(v interface{}) *mcp.CallToolResult {
	out, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(out))
}

// errSummary picks the failure summary from the error kind.
func errSummary(err error, fallback string) string {
	var re *Error
	if errors.As(err, &re) {
		switch re.Kind {
		case KindNotFound:
			return "list not found"
		case KindValidation:
			return "invalid input"
		}
	}
	return fallback
}

func (s *Server) handleGetLists(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names, err := s.svc.ListNames(ctx)
	if err != nil {
		log.Error().Err(err).Msg("get_lists failed")
		return toolError("failed to get lists", err), nil
	}
	return toolJSON(names), nil
}

func (s *Server) handleGetReminders(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	listName := req.GetString("listName", "")
	if listName == "" {
		return toolError("invalid input", fmt.Errorf("listName is required")), nil
	}

	log.Debug().Str("list", listName).Msg("get_reminders invoked")

	records, err := s.svc.ListReminders(ctx, listName)
	if err != nil {
		log.Error().Err(err).Str("list", listName).Msg("get_reminders failed")
		return toolError(errSummary(err, "failed to get reminders"), err), nil
	}
	if records == nil {
		records = []Reminder{}
	}
	return toolJSON(records), nil
}

func (s *Server) handleCreateReminder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	p := CreateParams{
		ListName: req.GetString("listName", ""),
		Title:    req.GetString("title", ""),
		DueDate:  req.GetString("dueDate", ""),
		Notes:    req.GetString("notes", ""),
	}
	if p.ListName == "" || p.Title == "" {
		return toolError("invalid input", fmt.Errorf("listName and title are required")), nil
	}

	if _, present := args["flagged"]; present {
		flagged := req.GetBool("flagged", false)
		p.Flagged = &flagged
	}
	if _, present := args["priority"]; present {
		priority := int(req.GetFloat("priority", 0))
		p.Priority = &priority
	}

	tags, _, err := stringSliceArg(args, "tags")
	if err != nil {
		return toolError("invalid input", err), nil
	}
	p.Tags = tags

	loc, present, err := locationArg(args)
	if err != nil {
		return toolError("invalid input", err), nil
	}
	if present {
		p.Location = loc
	}

	log.Debug().Str("list", p.ListName).Str("title", p.Title).Msg("create_reminder invoked")

	created, err := s.svc.CreateReminder(ctx, p)
	if err != nil {
		log.Error().Err(err).Str("list", p.ListName).Msg("create_reminder failed")
		return toolError(errSummary(err, "failed to create reminder"), err), nil
	}
	return toolJSON(map[string]interface{}{
		"success": created,
		"message": fmt.Sprintf("Reminder %q created in list %q.", p.Title, p.ListName),
	}), nil
}

func (s *Server) handleGetTags(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	listName := req.GetString("listName", "")

	log.Debug().Str("list", listName).Msg("get_tags invoked")

	tags, err := s.svc.ListTags(ctx, listName)
	if err != nil {
		log.Error().Err(err).Str("list", listName).Msg("get_tags failed")
		return toolError(errSummary(err, "failed to get tags"), err), nil
	}
	if tags == nil {
		tags = []string{}
	}
	return toolJSON(tags), nil
}

func (s *Server) handleSetAttributes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	listName := req.GetString("listName", "")
	reminderName := req.GetString("reminderName", "")
	if listName == "" || reminderName == "" {
		return toolError("invalid input", fmt.Errorf("listName and reminderName are required")), nil
	}

	var ch AttributeChanges
	if _, present := args["flagged"]; present {
		flagged := req.GetBool("flagged", false)
		ch.Flagged = &flagged
	}
	if _, present := args["priority"]; present {
		priority := int(req.GetFloat("priority", 0))
		ch.Priority = &priority
	}

	tags, present, err := stringSliceArg(args, "tags")
	if err != nil {
		return toolError("invalid input", err), nil
	}
	if present {
		if tags == nil {
			tags = []string{}
		}
		ch.Tags = tags
	}

	loc, present, err := locationArg(args)
	if err != nil {
		return toolError("invalid input", err), nil
	}
	if present {
		ch.Location = loc
		ch.SetLocation = true
	}

	log.Debug().Str("list", listName).Str("reminder", reminderName).Msg("set_attributes invoked")

	found, err := s.svc.SetReminderAttributes(ctx, listName, reminderName, ch)
	if err != nil {
		log.Error().Err(err).Str("list", listName).Str("reminder", reminderName).Msg("set_attributes failed")
		return toolError(errSummary(err, "failed to set attributes"), err), nil
	}
	msg := fmt.Sprintf("Reminder %q updated.", reminderName)
	if !found {
		msg = fmt.Sprintf("No reminder named %q in list %q.", reminderName, listName)
	}
	return toolJSON(map[string]interface{}{"success": found, "message": msg}), nil
}

func (s *Server) handleCompleteReminder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	listName := req.GetString("listName", "")
	reminderName := req.GetString("reminderName", "")
	if listName == "" || reminderName == "" {
		return toolError("invalid input", fmt.Errorf("listName and reminderName are required")), nil
	}

	log.Debug().Str("list", listName).Str("reminder", reminderName).Msg("complete_reminder invoked")

	found, err := s.svc.CompleteReminder(ctx, listName, reminderName)
	if err != nil {
		log.Error().Err(err).Str("list", listName).Str("reminder", reminderName).Msg("complete_reminder failed")
		return toolError(errSummary(err, "failed to complete reminder"), err), nil
	}
	msg := fmt.Sprintf("Reminder %q marked as completed.", reminderName)
	if !found {
		msg = fmt.Sprintf("No reminder named %q in list %q.", reminderName, listName)
	}
	return toolJSON(map[string]interface{}{"success": found, "message": msg}), nil
}

func (s *Server) handleDeleteReminder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	listName := req.GetString("listName", "")
	reminderName := req.GetString("reminderName", "")
	if listName == "" || reminderName == "" {
		return toolError("invalid input", fmt.Errorf("listName and reminderName are required")), nil
	}

	log.Debug().Str("list", listName).Str("reminder", reminderName).Msg("delete_reminder invoked")

	found, err := s.svc.DeleteReminder(ctx, listName, reminderName)
	if err != nil {
		log.Error().Err(err).Str("list", listName).Str("reminder", reminderName).Msg("delete_reminder failed")
		return toolError(errSummary(err, "failed to delete reminder"), err), nil
	}
	msg := fmt.Sprintf("Reminder %q deleted.", reminderName)
	if !found {
		msg = fmt.Sprintf("No reminder named %q in list %q.", reminderName, listName)
	}
	return toolJSON(map[string]interface{}{"success": found, "message": msg}), nil
}

// stringSliceArg reads an optional array-of-strings argument. The second
// return reports whether the key was present at all.
func stringSliceArg(args map[string]interface{}, key string) ([]string, bool, error) {
	raw, present := args[key]
	if !present {
		return nil, false, nil
	}
	if raw == nil {
		return nil, true, nil
	}
	items, ok := raw.([]interface{})
	if !ok {
		return nil, true, fmt.Errorf("%s must be an array of strings", key)
	}
	out := make([]string, 0, len(items))
	for _, v := range items {
		s, ok := v.(string)
		if !ok {
			return nil, true, fmt.Errorf("%s must be an array of strings", key)
		}
		out = append(out, s)
	}
	return out, true, nil
}

// locationArg reads the optional location argument. A present-but-null
// value is a deliberate clear: present is true and the location nil.
func locationArg(args map[string]interface{}) (*Location, bool, error) {
	raw, present := args["location"]
	if !present {
		return nil, false, nil
	}
	if raw == nil {
		return nil, true, nil
	}
	m, ok := raw.(map[string]interface{})
	if !ok {
		return nil, true, fmt.Errorf("location must be an object or null")
	}

	loc := &Location{}
	if v, ok := m["title"]; ok && v != nil {
		s, ok := v.(string)
		if !ok {
			return nil, true, fmt.Errorf("location.title must be a string")
		}
		loc.Title = s
	}
	var err error
	if loc.Latitude, err = floatField(m, "latitude"); err != nil {
		return nil, true, err
	}
	if loc.Longitude, err = floatField(m, "longitude"); err != nil {
		return nil, true, err
	}
	if loc.RadiusMeters, err = floatField(m, "radius"); err != nil {
		return nil, true, err
	}
	if v, ok := m["proximity"]; ok && v != nil {
		s, ok := v.(string)
		if !ok {
			return nil, true, fmt.Errorf("location.proximity must be a string")
		}
		loc.Proximity = s
	}
	return loc, true, nil
}

func floatField(m map[string]interface{}, key string) (*float64, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, nil
	}
	f, ok := v.(float64)
	if !ok {
		return nil, fmt.Errorf("location.%s must be a number", key)
	}
	return &f, nil
}
