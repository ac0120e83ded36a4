package pterodactyl

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Cron is the set of cron fields controlling when a schedule triggers.
// Fields use standard cron syntax ("*", "*/5", "1,15", "1-5").
type Cron struct {
	Minute     string `json:"minute"`
	Hour       string `json:"hour"`
	DayOfMonth string `json:"day_of_month"`
	Month      string `json:"month"`
	DayOfWeek  string `json:"day_of_week"`
}

func (c *Cron) UnmarshalJSON(data []byte) error {
	// Older panels omit the month field.
	type alias Cron
	aux := alias{Month: "*"}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*c = Cron(aux)
	return nil
}

// DefaultCron triggers at minute 0 of hour 0 every day.
func DefaultCron() Cron {
	return Cron{Minute: "0", Hour: "0", DayOfMonth: "*", Month: "*", DayOfWeek: "*"}
}

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Validate checks the cron fields against standard cron syntax.
func (c Cron) Validate() error {
	expr := strings.Join([]string{c.Minute, c.Hour, c.DayOfMonth, c.Month, c.DayOfWeek}, " ")
	if _, err := cronParser.Parse(expr); err != nil {
		return fmt.Errorf("invalid cron %q: %w", expr, err)
	}
	return nil
}

// Schedule is a task schedule on a server.
type Schedule struct {
	// ID of the schedule.
	ID uint64 `json:"id"`
	// Name of the schedule.
	Name string `json:"name"`
	// Cron controls when the schedule triggers.
	Cron Cron `json:"cron"`
	// IsActive reports whether the schedule is enabled.
	IsActive bool `json:"is_active"`
	// IsProcessing reports whether the schedule is currently running.
	IsProcessing bool `json:"is_processing"`
	// LastRunAt is when the schedule last ran, nil if never.
	LastRunAt *time.Time `json:"last_run_at"`
	// NextRunAt is when the schedule will next run, nil when inactive.
	NextRunAt *time.Time `json:"next_run_at"`
	// CreatedAt is when the schedule was created.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is when the schedule was last updated.
	UpdatedAt time.Time `json:"updated_at"`
	// Relationships carries the schedule's tasks.
	Relationships ScheduleRelationships `json:"relationships"`
}

// ScheduleRelationships is extra data returned alongside a schedule.
type ScheduleRelationships struct {
	// Tasks in execution order.
	Tasks []ScheduleTask
}

func (r *ScheduleRelationships) UnmarshalJSON(data []byte) error {
	var raw struct {
		Tasks listResponse[ScheduleTask] `json:"tasks"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Tasks = raw.Tasks.items()
	return nil
}

// TaskAction is the kind of action a schedule task performs.
type TaskAction int

const (
	// TaskCommand sends a console command; the payload is the command text.
	TaskCommand TaskAction = iota
	// TaskPower sends a power signal; the payload is the signal name.
	TaskPower
	// TaskBackup creates a backup; the payload is a newline separated
	// list of files to ignore.
	TaskBackup
)

var taskActionNames = map[TaskAction]string{
	TaskCommand: "command",
	TaskPower:   "power",
	TaskBackup:  "backup",
}

var taskActionFromName = map[string]TaskAction{
	"command": TaskCommand,
	"power":   TaskPower,
	"backup":  TaskBackup,
}

func (a TaskAction) String() string {
	if name, ok := taskActionNames[a]; ok {
		return name
	}
	return "unknown"
}

func (a TaskAction) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *TaskAction) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	action, ok := taskActionFromName[name]
	if !ok {
		return fmt.Errorf("unknown task action %q", name)
	}
	*a = action
	return nil
}

// ScheduleTask is one step of a schedule.
type ScheduleTask struct {
	// ID of the task.
	ID uint64 `json:"id"`
	// SequenceID orders tasks within the schedule.
	SequenceID uint64 `json:"sequence_id"`
	// Action kind.
	Action TaskAction `json:"action"`
	// Payload is the action's argument; see the TaskAction constants.
	Payload string `json:"payload"`
	// TimeOffset is the delay in seconds after the schedule triggers.
	TimeOffset int `json:"time_offset"`
	// IsQueued reports whether the task is waiting to run.
	IsQueued bool `json:"is_queued"`
	// CreatedAt is when the task was created.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is when the task was last updated.
	UpdatedAt time.Time `json:"updated_at"`
}

// PowerSignal decodes the payload of a TaskPower task.
func (t ScheduleTask) PowerSignal() (PowerSignal, error) {
	if t.Action != TaskPower {
		return 0, fmt.Errorf("task action is %s, not power", t.Action)
	}
	signal, ok := powerSignalFromName[t.Payload]
	if !ok {
		return 0, fmt.Errorf("unknown power signal %q", t.Payload)
	}
	return signal, nil
}

// IgnoredFiles decodes the payload of a TaskBackup task.
func (t ScheduleTask) IgnoredFiles() []string {
	var files []string
	for _, line := range strings.Split(t.Payload, "\n") {
		if line != "" {
			files = append(files, line)
		}
	}
	return files
}

// ScheduleParams are the parameters for creating or updating a schedule.
type ScheduleParams struct {
	Name     string
	IsActive bool
	Cron     Cron
}

// NewScheduleParams returns schedule parameters with the given name and the
// default cron rules.
func NewScheduleParams(name string) ScheduleParams {
	return ScheduleParams{Name: name, Cron: DefaultCron()}
}

// The panel expects the cron fields inline with the schedule fields.
func (p ScheduleParams) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name       string `json:"name"`
		IsActive   bool   `json:"is_active,omitempty"`
		Minute     string `json:"minute"`
		Hour       string `json:"hour"`
		DayOfMonth string `json:"day_of_month"`
		Month      string `json:"month"`
		DayOfWeek  string `json:"day_of_week"`
	}{
		Name:       p.Name,
		IsActive:   p.IsActive,
		Minute:     p.Cron.Minute,
		Hour:       p.Cron.Hour,
		DayOfMonth: p.Cron.DayOfMonth,
		Month:      p.Cron.Month,
		DayOfWeek:  p.Cron.DayOfWeek,
	})
}

// TaskParams are the parameters for creating or updating a schedule task.
type TaskParams struct {
	Action     TaskAction `json:"action"`
	Payload    string     `json:"payload"`
	TimeOffset int        `json:"time_offset"`
}

// CommandTask returns parameters for a task that runs a console command.
func CommandTask(command string) TaskParams {
	return TaskParams{Action: TaskCommand, Payload: command}
}

// PowerTask returns parameters for a task that sends a power signal.
func PowerTask(signal PowerSignal) TaskParams {
	return TaskParams{Action: TaskPower, Payload: signal.String()}
}

// BackupTask returns parameters for a task that creates a backup, ignoring
// the given files.
func BackupTask(ignoredFiles ...string) TaskParams {
	return TaskParams{Action: TaskBackup, Payload: strings.Join(ignoredFiles, "\n")}
}

// Schedules lists this server's schedules.
func (s *Server) Schedules(ctx context.Context) ([]Schedule, error) {
	var out listResponse[Schedule]
	if err := s.client.get(ctx, "servers/"+s.id+"/schedules", &out); err != nil {
		return nil, err
	}
	return out.items(), nil
}

// CreateSchedule creates a schedule with the given parameters. The cron
// fields are validated locally before the request is made.
func (s *Server) CreateSchedule(ctx context.Context, params ScheduleParams) (*Schedule, error) {
	if err := params.Cron.Validate(); err != nil {
		return nil, err
	}
	var out attributesResponse[Schedule]
	if err := s.client.post(ctx, "servers/"+s.id+"/schedules", params, &out); err != nil {
		return nil, err
	}
	return &out.Attributes, nil
}

// Schedule fetches the schedule with the given ID.
func (s *Server) Schedule(ctx context.Context, id uint64) (*Schedule, error) {
	var out attributesResponse[Schedule]
	if err := s.client.get(ctx, "servers/"+s.id+"/schedules/"+strconv.FormatUint(id, 10), &out); err != nil {
		return nil, err
	}
	return &out.Attributes, nil
}

// UpdateSchedule updates the schedule with the given ID.
func (s *Server) UpdateSchedule(ctx context.Context, id uint64, params ScheduleParams) (*Schedule, error) {
	if err := params.Cron.Validate(); err != nil {
		return nil, err
	}
	var out attributesResponse[Schedule]
	if err := s.client.post(ctx, "servers/"+s.id+"/schedules/"+strconv.FormatUint(id, 10), params, &out); err != nil {
		return nil, err
	}
	return &out.Attributes, nil
}

// DeleteSchedule deletes the schedule with the given ID.
func (s *Server) DeleteSchedule(ctx context.Context, id uint64) error {
	return s.client.delete(ctx, "servers/"+s.id+"/schedules/"+strconv.FormatUint(id, 10))
}

// CreateTask adds a task to a schedule.
func (s *Server) CreateTask(ctx context.Context, scheduleID uint64, params TaskParams) (*ScheduleTask, error) {
	var out attributesResponse[ScheduleTask]
	endpoint := "servers/" + s.id + "/schedules/" + strconv.FormatUint(scheduleID, 10) + "/tasks"
	if err := s.client.post(ctx, endpoint, params, &out); err != nil {
		return nil, err
	}
	return &out.Attributes, nil
}

// UpdateTask updates a task in a schedule.
func (s *Server) UpdateTask(ctx context.Context, scheduleID, taskID uint64, params TaskParams) (*ScheduleTask, error) {
	var out attributesResponse[ScheduleTask]
	endpoint := "servers/" + s.id + "/schedules/" + strconv.FormatUint(scheduleID, 10) +
		"/tasks/" + strconv.FormatUint(taskID, 10)
	if err := s.client.post(ctx, endpoint, params, &out); err != nil {
		return nil, err
	}
	return &out.Attributes, nil
}

// DeleteTask removes a task from a schedule.
func (s *Server) DeleteTask(ctx context.Context, scheduleID, taskID uint64) error {
	endpoint := "servers/" + s.id + "/schedules/" + strconv.FormatUint(scheduleID, 10) +
		"/tasks/" + strconv.FormatUint(taskID, 10)
	return s.client.delete(ctx, endpoint)
}
