package views

import (
	"strings"
	"testing"
)

func TestRenderTaskListPanelRows(t *testing.T) {
	out := RenderTaskListPanel(TaskListPanelData{
		Focused: true,
		Cursor:  1,
		Rows: []TaskRowData{
			{ShortID: "a1", Description: "Call Alice", Priority: 1, PriorityLabel: "High", CreatedAt: "2026-02-09 12:00"},
			{ShortID: "b2", Description: "Buy milk", Priority: 2, PriorityLabel: "Medium", Completed: true, CreatedAt: "2026-02-09 12:01", CompletedAt: "2026-02-09 13:00"},
		},
	})
	for _, want := range []string{"tasks *:", "[ ] Call Alice", "[High]", "#a1", "> [x]", "Buy milk", "done 2026-02-09 13:00"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Index(out, "Call Alice") > strings.Index(out, "Buy milk") {
		t.Fatalf("rows must keep the given order:\n%s", out)
	}
}

func TestRenderTaskListPanelEmpty(t *testing.T) {
	out := RenderTaskListPanel(TaskListPanelData{})
	if !strings.Contains(out, "(no tasks)") {
		t.Fatalf("expected empty marker: %q", out)
	}
}

func TestRenderFormPanel(t *testing.T) {
	out := RenderFormPanel(FormPanelData{InputView: "> milk", Priority: 2, PriorityLabel: "Medium", Focused: true, ErrorText: FormErrorText})
	for _, want := range []string{"new task *:", "> milk", "[Medium]", FormErrorText} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}

	out = RenderFormPanel(FormPanelData{InputView: "> milk", Editing: true})
	if !strings.Contains(out, "edit task:") || strings.Contains(out, "priority:") {
		t.Fatalf("unexpected edit form:\n%s", out)
	}
}

func TestRenderConfirmAndPalette(t *testing.T) {
	if RenderConfirm(ConfirmData{}) != "" || RenderCommandPalette(false, "x") != "" {
		t.Fatal("inactive overlays must render empty")
	}
	if out := RenderConfirm(ConfirmData{Active: true, Description: "Buy milk"}); !strings.Contains(out, `delete "Buy milk"? y/n`) {
		t.Fatalf("unexpected confirm: %q", out)
	}
	if out := RenderCommandPalette(true, "/add 1 x"); out != "command: /add 1 x" {
		t.Fatalf("unexpected palette: %q", out)
	}
}

func TestRenderAppLayout(t *testing.T) {
	out := RenderApp(AppData{Header: "todo | tasks: 2", LeftPane: "left", RightPane: "right", StatusLine: "status: ok", Footer: "keys"})
	for _, want := range []string{"todo | tasks: 2", "left", "right", "status: ok", "keys"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderMarkdownEmpty(t *testing.T) {
	if RenderMarkdown("   ") != "" {
		t.Fatal("expected empty markdown to render empty")
	}
}
