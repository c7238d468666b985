package views

import (
	"fmt"
	"sort"
	"strings"
)

type TaskItemData struct {
	ID          int64
	Title       string
	Completed   bool
	Date        string
	Time        string
	Priority    string
	HasReminder bool
}

type TaskListData struct {
	Items  []TaskItemData
	Cursor int
}

func TaskListPane(data TaskListData) string {
	if len(data.Items) == 0 {
		return "No tasks yet. Press c to create one."
	}
	var b strings.Builder
	for i, item := range data.Items {
		marker := "[ ]"
		if item.Completed {
			marker = "[x]"
		}
		bell := " "
		if item.HasReminder {
			bell = "*"
		}
		line := fmt.Sprintf("%s %s %s %s %s (%s)", marker, bell, item.Date, item.Time, item.Title, item.Priority)
		if item.Completed {
			line = doneStyle.Render(line)
		}
		prefix := "  "
		if i == data.Cursor {
			prefix = cursorStyle.Render("> ")
		}
		b.WriteString(prefix + line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

type CreateFieldData struct {
	Label   string
	View    string
	Focused bool
}

type CreateFormData struct {
	Fields   []CreateFieldData
	Priority string
}

func CreatePane(data CreateFormData) string {
	var b strings.Builder
	b.WriteString("New task\n\n")
	for _, f := range data.Fields {
		marker := "  "
		if f.Focused {
			marker = cursorStyle.Render("> ")
		}
		b.WriteString(fmt.Sprintf("%s%s: %s\n", marker, f.Label, f.View))
	}
	b.WriteString(fmt.Sprintf("\nPriority: %s  (p cycles, tab switches field, enter saves, esc cancels)", data.Priority))
	return b.String()
}

type QuizData struct {
	Question string
	Answers  []string
	Answered int
	Total    int
}

func QuizPane(data QuizData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Question %d of %d\n\n", data.Answered+1, data.Total))
	b.WriteString(data.Question + "\n\n")
	for i, a := range data.Answers {
		b.WriteString(fmt.Sprintf("  %d) %s\n", i, a))
	}
	b.WriteString("\nPress 0-3 to answer, esc to leave.")
	return b.String()
}

// QuizResultMarkdown builds the result screen as markdown for glamour.
func QuizResultMarkdown(dominant string, percent map[string]float64) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("# Your temperament: %s\n\n", dominant))
	b.WriteString("| Temperament | Share |\n|---|---|\n")
	names := make([]string, 0, len(percent))
	for name := range percent {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b.WriteString(fmt.Sprintf("| %s | %.1f%% |\n", name, percent[name]))
	}
	return b.String()
}

type RemoteItemData struct {
	ID        int64
	Title     string
	Completed bool
}

type RemoteData struct {
	Loading bool
	Err     string
	Items   []RemoteItemData
}

func RemotePane(data RemoteData) string {
	if data.Loading {
		return "Fetching demo list..."
	}
	if data.Err != "" {
		return errorStyle.Render("Demo list unavailable: " + data.Err)
	}
	if len(data.Items) == 0 {
		return "Demo list is empty."
	}
	var b strings.Builder
	for _, item := range data.Items {
		marker := "[ ]"
		if item.Completed {
			marker = "[x]"
		}
		b.WriteString(fmt.Sprintf("  %s #%d %s\n", marker, item.ID, item.Title))
	}
	return strings.TrimRight(b.String(), "\n")
}

func HomePane() string {
	return strings.Join([]string{
		"nagadai — tasks that nag back",
		"",
		"  t  task list",
		"  c  create task",
		"  g  temperament test",
		"  m  demo list (read-only)",
		"  ?  help",
		"  q  quit",
	}, "\n")
}

func ConfirmDeletePane(taskLabel string) string {
	return fmt.Sprintf("Delete task?\n\n%s\n\ny — delete    n — keep", taskLabel)
}

type NoticeData struct {
	Title string
	Body  string
}

func NoticePane(data NoticeData) string {
	return fmt.Sprintf("%s\n%s\n\no — open list    x — delete task    esc — dismiss", data.Title, data.Body)
}

func HelpMarkdown() string {
	return strings.Join([]string{
		"# nagadai",
		"",
		"A personal task list with one-shot reminders.",
		"",
		"## Keys",
		"- `t` task list, `c` create, `g` quiz, `m` demo list, `h` home",
		"- list: `j`/`k` move, `space` toggle done, `d` delete, `r` reload",
		"- a fired reminder shows a notice: `o` opens the list, `x` asks to delete",
		"- `q` quits",
	}, "\n")
}
