// Package router normalizes the asynchronous entry points of the reminder
// subsystem into one signal shape with a single dispatch path. The entry
// points are action-button responses, deep links, and the response that
// launched the session.
package router

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"sync"
)

// Scheme is the app-link scheme. Delete links look like nagadai://delete/<id>.
const Scheme = "nagadai"

var (
	ErrMissingTaskID = errors.New("router: notification payload has no task id")
	ErrIgnoredLink   = errors.New("router: link not recognized")
)

type Action string

const (
	ActionShow   Action = "show"
	ActionDelete Action = "delete"
)

// Signal is the normalized form every event source reduces to.
type Signal struct {
	Action Action
	TaskID string
}

// Response is an action-button event as reported by the notification
// subsystem: the action the user picked plus the original payload data.
type Response struct {
	ActionID string
	Data     map[string]string
}

// DeepLink builds the delete app-link carried in reminder payloads.
func DeepLink(taskID int64) string {
	return Scheme + "://delete/" + strconv.FormatInt(taskID, 10)
}

// ParseDeepLink recognizes delete links. Links with a foreign scheme or an
// unknown path are ignored rather than treated as errors worth surfacing.
func ParseDeepLink(raw string) (Signal, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme != Scheme {
		return Signal{}, ErrIgnoredLink
	}
	if u.Host != string(ActionDelete) {
		return Signal{}, ErrIgnoredLink
	}
	id := strings.Trim(u.Path, "/")
	if id == "" {
		return Signal{}, ErrMissingTaskID
	}
	return Signal{Action: ActionDelete, TaskID: id}, nil
}

// NormalizeResponse converts an action-button response into a signal. A
// payload without a task id cannot be acted on.
func NormalizeResponse(resp Response) (Signal, error) {
	id := strings.TrimSpace(resp.Data["id"])
	if id == "" {
		return Signal{}, ErrMissingTaskID
	}
	switch Action(resp.ActionID) {
	case ActionShow:
		return Signal{Action: ActionShow, TaskID: id}, nil
	case ActionDelete:
		return Signal{Action: ActionDelete, TaskID: id}, nil
	default:
		return Signal{}, fmt.Errorf("router: unknown action %q", resp.ActionID)
	}
}

// DeleteSink receives delete signals. Deletion is never executed here: the
// sink holds the id until a live UI can confirm it.
type DeleteSink interface {
	RequestDelete(taskID string)
}

// LaunchSource reports the deep link that launched this session, if any.
// It is consulted exactly once per Router.
type LaunchSource interface {
	LastLaunchLink() (string, bool)
}

type Router struct {
	logger     *slog.Logger
	onShow     func()
	deletes    DeleteSink
	replayOnce sync.Once
}

func New(logger *slog.Logger, onShow func(), deletes DeleteSink) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{logger: logger, onShow: onShow, deletes: deletes}
}

// HandleResponse routes an action-button response. Malformed payloads are
// logged and dropped; there is nothing to act on.
func (r *Router) HandleResponse(resp Response) {
	sig, err := NormalizeResponse(resp)
	if err != nil {
		r.logger.Error("dropping notification response", "action", resp.ActionID, "err", err)
		return
	}
	r.dispatch(sig)
}

// HandleLink routes an app-link observed while the app is running.
func (r *Router) HandleLink(raw string) {
	sig, err := ParseDeepLink(raw)
	if err != nil {
		if !errors.Is(err, ErrIgnoredLink) {
			r.logger.Error("dropping app link", "url", raw, "err", err)
		}
		return
	}
	r.dispatch(sig)
}

// ReplayLaunch feeds the link that cold-launched this session through the
// normal path. Repeated calls are no-ops so a delete action performed while
// the app was terminated is honored exactly once.
func (r *Router) ReplayLaunch(src LaunchSource) {
	if src == nil {
		return
	}
	r.replayOnce.Do(func() {
		if link, ok := src.LastLaunchLink(); ok {
			r.HandleLink(link)
		}
	})
}

func (r *Router) dispatch(sig Signal) {
	switch sig.Action {
	case ActionShow:
		if r.onShow != nil {
			r.onShow()
		}
	case ActionDelete:
		if r.deletes != nil {
			r.deletes.RequestDelete(sig.TaskID)
		}
	}
}

// ArgsLaunch scans command-line arguments for an app link, standing in for
// the mobile OS handing the launching intent to the process.
type ArgsLaunch struct {
	Args []string
}

func (a ArgsLaunch) LastLaunchLink() (string, bool) {
	for _, arg := range a.Args {
		if strings.HasPrefix(arg, Scheme+"://") {
			return arg, true
		}
	}
	return "", false
}
