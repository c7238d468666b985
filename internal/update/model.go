package update

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/okravets/nagadai/internal/badge"
	"github.com/okravets/nagadai/internal/logging"
	"github.com/okravets/nagadai/internal/model"
	"github.com/okravets/nagadai/internal/notify"
	"github.com/okravets/nagadai/internal/pending"
	"github.com/okravets/nagadai/internal/quiz"
	"github.com/okravets/nagadai/internal/remote"
	"github.com/okravets/nagadai/internal/router"
	"github.com/okravets/nagadai/internal/tasks"
)

type View string

const (
	ViewHome   View = "Home"
	ViewTasks  View = "Tasks"
	ViewCreate View = "Create"
	ViewQuiz   View = "Quiz"
	ViewRemote View = "Remote"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Home   string
	Tasks  string
	Create string
	Quiz   string
	Remote string
	Help   string
	Quit   string
}

// Events is the single inbound channel for everything that happens off the
// program goroutine: badge updates, confirmation prompts, show-navigation.
type Events chan tea.Msg

func NewEvents() Events {
	return make(Events, 64)
}

func (e Events) PostConfirm(taskID string) {
	e <- ConfirmDeleteMsg{TaskID: taskID}
}

func (e Events) PostShowTasks() {
	e <- ShowTasksMsg{}
}

// PostBadge never blocks; a dropped update is repaired by the next refresh.
func (e Events) PostBadge(count int) {
	select {
	case e <- BadgeMsg{Count: count}:
	default:
	}
}

// ConfirmState is the blocking yes/no overlay for a pending deletion.
type ConfirmState struct {
	TaskID string
	Label  string
}

type createForm struct {
	inputs   []textinput.Model
	focus    int
	priority int
}

const (
	fieldTitle = iota
	fieldDate
	fieldTime
	fieldPriority
)

var priorities = []model.Priority{model.PriorityLow, model.PriorityMedium, model.PriorityHigh}

type Model struct {
	CurrentView View

	Service      *tasks.Service
	Pending      *pending.Machine
	Router       *router.Router
	Counter      *badge.Counter
	RemoteClient *remote.Client
	Notifier     notify.DesktopNotifier

	DesktopEnabled bool

	TaskItems  []model.Task
	Cursor     int
	BadgeCount int
	Status     StatusBar
	Confirm    *ConfirmState
	Notice     *notify.Delivery

	Quiz       *quiz.Session
	QuizDone   bool
	QuizResult quiz.Result

	RemoteTodos   []remote.Todo
	RemoteLoaded  bool
	RemoteLoading bool
	RemoteErr     string

	HelpVisible bool
	Keys        GlobalKeyMap
	Quitting    bool

	form   createForm
	spin   spinner.Model
	logger *slog.Logger
}

// Deps carries the wired collaborators into the program model. External
// events (badge updates, prompts, fired reminders) reach the model through
// Program.Send, not through the model itself.
type Deps struct {
	Service        *tasks.Service
	Pending        *pending.Machine
	Router         *router.Router
	Counter        *badge.Counter
	RemoteClient   *remote.Client
	Notifier       notify.DesktopNotifier
	DesktopEnabled bool
	Logger         *slog.Logger
}

func NewModel(deps Deps) Model {
	if deps.Notifier == nil {
		deps.Notifier = notify.NoopDesktopNotifier{}
	}
	if deps.Logger == nil {
		deps.Logger = logging.Discard()
	}

	m := Model{
		CurrentView:    ViewHome,
		Service:        deps.Service,
		Pending:        deps.Pending,
		Router:         deps.Router,
		Counter:        deps.Counter,
		RemoteClient:   deps.RemoteClient,
		Notifier:       deps.Notifier,
		DesktopEnabled: deps.DesktopEnabled,
		logger:         deps.Logger,
		Keys: GlobalKeyMap{
			Home:   "h",
			Tasks:  "t",
			Create: "c",
			Quiz:   "g",
			Remote: "m",
			Help:   "?",
			Quit:   "q",
		},
	}
	m.spin = spinner.New(spinner.WithSpinner(spinner.Dot))
	m.form = newCreateForm()
	return m
}

func newCreateForm() createForm {
	title := textinput.New()
	title.Placeholder = "What needs doing?"
	title.CharLimit = 120
	title.Focus()

	date := textinput.New()
	date.Placeholder = model.DateLayout
	date.CharLimit = len(model.DateLayout)
	date.SetValue(time.Now().Format(model.DateLayout))

	hhmm := textinput.New()
	hhmm.Placeholder = "HH:MM"
	hhmm.CharLimit = 5
	hhmm.SetValue(time.Now().Add(time.Hour).Format(model.TimeLayout))

	return createForm{inputs: []textinput.Model{title, date, hhmm}}
}

func (f *createForm) reset() {
	*f = newCreateForm()
}

func (f *createForm) draft() model.Task {
	return model.Task{
		Title:    f.inputs[fieldTitle].Value(),
		Date:     f.inputs[fieldDate].Value(),
		Time:     f.inputs[fieldTime].Value(),
		Priority: priorities[f.priority],
	}
}

func (f *createForm) cycleFocus(back bool) {
	f.inputs[f.focus%len(f.inputs)].Blur()
	if back {
		f.focus--
		if f.focus < 0 {
			f.focus = fieldPriority
		}
	} else {
		f.focus = (f.focus + 1) % (fieldPriority + 1)
	}
	if f.focus < len(f.inputs) {
		f.inputs[f.focus].Focus()
	}
}

func (f *createForm) cyclePriority() {
	f.priority = (f.priority + 1) % len(priorities)
}

// Messages.

type TasksLoadedMsg struct {
	Items []model.Task
	Err   error
}

type TaskMutatedMsg struct {
	Notice  string
	IsError bool
}

type BadgeMsg struct {
	Count int
}

type ConfirmDeleteMsg struct {
	TaskID string
}

type ShowTasksMsg struct{}

type ReminderDeliveredMsg struct {
	Delivery notify.Delivery
}

type RemoteLoadedMsg struct {
	Todos []remote.Todo
	Err   error
}

type StatusMsg struct {
	Text    string
	IsError bool
}
