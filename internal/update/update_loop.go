package update

import (
	"strconv"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/okravets/nagadai/internal/model"
	"github.com/okravets/nagadai/internal/quiz"
	"github.com/okravets/nagadai/internal/router"
	"github.com/okravets/nagadai/internal/views"
)

func (m Model) Init() tea.Cmd {
	return m.loadTasksCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.FocusMsg:
		// Terminal focus is this app's foreground transition.
		if m.Pending != nil {
			m.Pending.Foreground()
		}
		return m, nil

	case tea.BlurMsg:
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(typed)

	case TasksLoadedMsg:
		if typed.Err != nil {
			m.Status = StatusBar{Text: "could not load tasks: " + typed.Err.Error(), IsError: true}
			return m, nil
		}
		m.TaskItems = typed.Items
		if m.Cursor >= len(m.TaskItems) {
			m.Cursor = max(0, len(m.TaskItems)-1)
		}
		m.syncBadge()
		return m, nil

	case TaskMutatedMsg:
		m.Status = StatusBar{Text: typed.Notice, IsError: typed.IsError}
		m.syncBadge()
		return m, m.loadTasksCmd()

	case BadgeMsg:
		m.BadgeCount = typed.Count
		return m, nil

	case ConfirmDeleteMsg:
		m.Confirm = &ConfirmState{TaskID: typed.TaskID, Label: m.taskLabel(typed.TaskID)}
		return m, nil

	case ShowTasksMsg:
		m.CurrentView = ViewTasks
		return m, m.loadTasksCmd()

	case ReminderDeliveredMsg:
		d := typed.Delivery
		m.Notice = &d
		m.Status = StatusBar{Text: "reminder fired: " + d.Title}
		cmds := []tea.Cmd{m.loadTasksCmd()}
		if m.DesktopEnabled {
			cmds = append(cmds, m.notifyDesktopCmd(d))
		}
		return m, tea.Batch(cmds...)

	case RemoteLoadedMsg:
		m.RemoteLoading = false
		m.RemoteLoaded = true
		if typed.Err != nil {
			m.RemoteErr = typed.Err.Error()
			return m, nil
		}
		m.RemoteErr = ""
		m.RemoteTodos = typed.Todos
		return m, nil

	case StatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(typed)
		if m.RemoteLoading {
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := key.String()

	if keyStr == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}

	// The confirmation overlay is blocking: only an answer gets through.
	if m.Confirm != nil {
		switch keyStr {
		case "y", "Y":
			taskID := m.Confirm.TaskID
			m.Confirm = nil
			return m, m.deleteTaskCmd(taskID)
		case "n", "N", "esc":
			m.Confirm = nil
			m.Status = StatusBar{Text: "deletion cancelled"}
			return m, nil
		}
		return m, nil
	}

	if m.Notice != nil {
		switch keyStr {
		case "o":
			notice := *m.Notice
			m.Notice = nil
			m.Router.HandleResponse(router.Response{
				ActionID: string(router.ActionShow),
				Data:     map[string]string{"id": notice.TaskID},
			})
			return m, nil
		case "x":
			notice := *m.Notice
			m.Notice = nil
			m.Router.HandleResponse(router.Response{
				ActionID: string(router.ActionDelete),
				Data:     map[string]string{"id": notice.TaskID},
			})
			// The app is interactive right now, so the pending request can
			// be surfaced without waiting for a focus change.
			m.Pending.Foreground()
			return m, nil
		case "esc":
			m.Notice = nil
			return m, nil
		}
	}

	if m.CurrentView == ViewCreate {
		return m.handleCreateKey(key)
	}

	switch keyStr {
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	case m.Keys.Home:
		m.CurrentView = ViewHome
		return m, nil
	case m.Keys.Tasks:
		m.CurrentView = ViewTasks
		return m, m.loadTasksCmd()
	case m.Keys.Create:
		m.CurrentView = ViewCreate
		m.form.reset()
		return m, nil
	case m.Keys.Quiz:
		m.CurrentView = ViewQuiz
		if m.Quiz == nil || m.QuizDone {
			m.Quiz = quiz.NewSession()
			m.QuizDone = false
		}
		return m, nil
	case m.Keys.Remote:
		m.CurrentView = ViewRemote
		if !m.RemoteLoaded && !m.RemoteLoading {
			m.RemoteLoading = true
			return m, tea.Batch(m.spin.Tick, m.fetchRemoteCmd())
		}
		return m, nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	}

	switch m.CurrentView {
	case ViewTasks:
		return m.handleTasksKey(keyStr)
	case ViewQuiz:
		return m.handleQuizKey(keyStr)
	case ViewRemote:
		if keyStr == "r" {
			m.RemoteLoading = true
			return m, tea.Batch(m.spin.Tick, m.fetchRemoteCmd())
		}
	}
	return m, nil
}

func (m Model) handleTasksKey(keyStr string) (tea.Model, tea.Cmd) {
	switch keyStr {
	case "j", "down":
		if m.Cursor < len(m.TaskItems)-1 {
			m.Cursor++
		}
	case "k", "up":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case " ", "enter":
		if task, ok := m.selectedTask(); ok {
			return m, m.toggleTaskCmd(task.ID)
		}
	case "d":
		if task, ok := m.selectedTask(); ok {
			m.Confirm = &ConfirmState{
				TaskID: strconv.FormatInt(task.ID, 10),
				Label:  task.Title,
			}
		}
	case "r":
		return m, m.loadTasksCmd()
	}
	return m, nil
}

func (m Model) handleQuizKey(keyStr string) (tea.Model, tea.Cmd) {
	if m.Quiz == nil {
		return m, nil
	}
	if keyStr == "esc" {
		m.CurrentView = ViewHome
		return m, nil
	}
	if m.QuizDone {
		return m, nil
	}
	value, err := strconv.Atoi(keyStr)
	if err != nil || value < 0 || value > 3 {
		return m, nil
	}
	done, err := m.Quiz.Answer(value)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	if done {
		m.QuizDone = true
		m.QuizResult = m.Quiz.Result()
	}
	return m, nil
}

func (m Model) handleCreateKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.CurrentView = ViewTasks
		return m, nil
	case "tab":
		m.form.cycleFocus(false)
		return m, nil
	case "shift+tab":
		m.form.cycleFocus(true)
		return m, nil
	case "enter":
		draft := m.form.draft()
		if err := draft.Validate(); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m, nil
		}
		m.CurrentView = ViewTasks
		m.form.reset()
		return m, m.createTaskCmd(draft)
	}

	if m.form.focus == fieldPriority {
		switch key.String() {
		case " ", "left", "right", "p":
			m.form.cyclePriority()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(key)
	return m, cmd
}

func (m Model) View() string {
	if m.Quitting {
		return "bye\n"
	}

	var body string
	switch m.CurrentView {
	case ViewHome:
		body = views.HomePane()
	case ViewTasks:
		body = views.TaskListPane(m.taskListData())
	case ViewCreate:
		body = views.CreatePane(m.createFormData())
	case ViewQuiz:
		body = m.quizBody()
	case ViewRemote:
		body = m.remoteBody()
	}

	if m.HelpVisible {
		body = views.RenderMarkdown(views.HelpMarkdown())
	}

	overlay := ""
	switch {
	case m.Confirm != nil:
		overlay = views.ConfirmDeletePane(m.Confirm.Label)
	case m.Notice != nil:
		overlay = views.NoticePane(views.NoticeData{Title: m.Notice.Title, Body: m.Notice.Body})
	}

	return views.RenderApp(views.AppData{
		Header:     "nagadai",
		Badge:      m.BadgeCount,
		Body:       body,
		StatusLine: m.Status.Text,
		StatusErr:  m.Status.IsError,
		Overlay:    overlay,
		Footer:     "h home · t tasks · c create · g quiz · m demo · ? help · q quit",
	})
}

func (m Model) quizBody() string {
	if m.Quiz == nil {
		return "Press g to start the temperament test."
	}
	if m.QuizDone {
		percent := make(map[string]float64, len(m.QuizResult.Percent))
		for temperament, pct := range m.QuizResult.Percent {
			percent[string(temperament)] = pct
		}
		return views.RenderMarkdown(views.QuizResultMarkdown(string(m.QuizResult.Dominant), percent))
	}

	question, _ := m.Quiz.Current()
	answered, total := m.Quiz.Progress()
	answers := make([]string, 0, 4)
	for _, a := range quiz.AnswerScale() {
		answers = append(answers, a.Label)
	}
	return views.QuizPane(views.QuizData{
		Question: question.Text,
		Answers:  answers,
		Answered: answered,
		Total:    total,
	})
}

func (m Model) remoteBody() string {
	data := views.RemoteData{Loading: m.RemoteLoading, Err: m.RemoteErr}
	if m.RemoteLoading {
		return m.spin.View() + " " + views.RemotePane(data)
	}
	for _, todo := range m.RemoteTodos {
		data.Items = append(data.Items, views.RemoteItemData{ID: todo.ID, Title: todo.Todo, Completed: todo.Completed})
	}
	return views.RemotePane(data)
}

func (m Model) taskListData() views.TaskListData {
	data := views.TaskListData{Cursor: m.Cursor}
	for _, task := range m.TaskItems {
		data.Items = append(data.Items, views.TaskItemData{
			ID:          task.ID,
			Title:       task.Title,
			Completed:   task.Completed,
			Date:        task.Date,
			Time:        task.Time,
			Priority:    string(task.Priority),
			HasReminder: task.HasReminder(),
		})
	}
	return data
}

func (m Model) createFormData() views.CreateFormData {
	labels := []string{"Title", "Date", "Time"}
	data := views.CreateFormData{Priority: string(priorities[m.form.priority])}
	for i, input := range m.form.inputs {
		data.Fields = append(data.Fields, views.CreateFieldData{
			Label:   labels[i],
			View:    input.View(),
			Focused: m.form.focus == i,
		})
	}
	data.Fields = append(data.Fields, views.CreateFieldData{
		Label:   "Priority",
		View:    string(priorities[m.form.priority]),
		Focused: m.form.focus == fieldPriority,
	})
	return data
}

func (m Model) selectedTask() (model.Task, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.TaskItems) {
		return model.Task{}, false
	}
	return m.TaskItems[m.Cursor], true
}

func (m *Model) syncBadge() {
	if m.Counter != nil {
		m.BadgeCount = m.Counter.Get()
	}
}

func (m Model) taskLabel(taskID string) string {
	for _, task := range m.TaskItems {
		if strconv.FormatInt(task.ID, 10) == taskID {
			return task.Title
		}
	}
	return "task #" + taskID
}
