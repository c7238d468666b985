package update

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/okravets/nagadai/internal/model"
	"github.com/okravets/nagadai/internal/notify"
	"github.com/okravets/nagadai/internal/tasks"
)

func (m Model) loadTasksCmd() tea.Cmd {
	svc := m.Service
	return func() tea.Msg {
		items, err := svc.List(context.Background())
		return TasksLoadedMsg{Items: items, Err: err}
	}
}

func (m Model) createTaskCmd(draft model.Task) tea.Cmd {
	svc := m.Service
	return func() tea.Msg {
		_, err := svc.Create(context.Background(), draft)
		switch {
		case errors.Is(err, tasks.ErrReminderNotScheduled):
			return TaskMutatedMsg{Notice: "task saved, but no reminder could be scheduled", IsError: true}
		case err != nil:
			return TaskMutatedMsg{Notice: "could not save task: " + err.Error(), IsError: true}
		default:
			return TaskMutatedMsg{Notice: "task created"}
		}
	}
}

func (m Model) toggleTaskCmd(id int64) tea.Cmd {
	svc := m.Service
	return func() tea.Msg {
		if err := svc.Toggle(context.Background(), id); err != nil {
			return TaskMutatedMsg{Notice: "could not update task: " + err.Error(), IsError: true}
		}
		return TaskMutatedMsg{Notice: "task updated"}
	}
}

func (m Model) deleteTaskCmd(taskID string) tea.Cmd {
	svc := m.Service
	return func() tea.Msg {
		if err := svc.DeleteFromSignal(context.Background(), taskID); err != nil {
			return TaskMutatedMsg{Notice: "could not delete task: " + err.Error(), IsError: true}
		}
		return TaskMutatedMsg{Notice: "task deleted"}
	}
}

func (m Model) fetchRemoteCmd() tea.Cmd {
	client := m.RemoteClient
	return func() tea.Msg {
		if client == nil {
			return RemoteLoadedMsg{Err: errors.New("demo list not configured")}
		}
		todos, err := client.FetchTodos(context.Background())
		return RemoteLoadedMsg{Todos: todos, Err: err}
	}
}

func (m Model) notifyDesktopCmd(d notify.Delivery) tea.Cmd {
	notifier := m.Notifier
	logger := m.logger
	return func() tea.Msg {
		if err := notifier.Send(d); err != nil {
			logger.Warn("desktop notification failed", "reminder", d.ReminderID, "err", err)
		}
		return nil
	}
}
