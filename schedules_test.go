package pterodactyl

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
)

func TestCronValidate(t *testing.T) {
	valid := []Cron{
		DefaultCron(),
		{Minute: "*/5", Hour: "*", DayOfMonth: "*", Month: "*", DayOfWeek: "*"},
		{Minute: "0", Hour: "3", DayOfMonth: "1,15", Month: "*", DayOfWeek: "1-5"},
	}
	for _, c := range valid {
		if err := c.Validate(); err != nil {
			t.Errorf("Validate(%+v) = %v, want nil", c, err)
		}
	}

	invalid := []Cron{
		{},
		{Minute: "61", Hour: "*", DayOfMonth: "*", Month: "*", DayOfWeek: "*"},
		{Minute: "banana", Hour: "*", DayOfMonth: "*", Month: "*", DayOfWeek: "*"},
	}
	for _, c := range invalid {
		if err := c.Validate(); err == nil {
			t.Errorf("Validate(%+v) = nil, want error", c)
		}
	}
}

func TestCronDefaultsMonth(t *testing.T) {
	var c Cron
	data := `{"minute":"0","hour":"0","day_of_month":"*","day_of_week":"*"}`
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if c.Month != "*" {
		t.Errorf("Month = %q, want default *", c.Month)
	}
}

func TestScheduleParamsInlinesCron(t *testing.T) {
	params := ScheduleParams{
		Name:     "nightly backup",
		IsActive: true,
		Cron:     Cron{Minute: "0", Hour: "3", DayOfMonth: "*", Month: "*", DayOfWeek: "*"},
	}
	data, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"name":"nightly backup","is_active":true,"minute":"0","hour":"3",` +
		`"day_of_month":"*","month":"*","day_of_week":"*"}`
	if string(data) != want {
		t.Errorf("marshal = %s, want %s", data, want)
	}
}

func TestCreateScheduleRejectsBadCron(t *testing.T) {
	requests := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusNoContent)
	})

	params := NewScheduleParams("broken")
	params.Cron.Minute = "every now and then"
	if _, err := c.Server("abc").CreateSchedule(context.Background(), params); err == nil {
		t.Fatal("CreateSchedule with invalid cron did not fail")
	}
	if requests != 0 {
		t.Errorf("made %d requests, want 0", requests)
	}
}

func TestTaskParamsJSON(t *testing.T) {
	tests := []struct {
		name   string
		params TaskParams
		want   string
	}{
		{
			"command",
			CommandTask("say restarting soon"),
			`{"action":"command","payload":"say restarting soon","time_offset":0}`,
		},
		{
			"power",
			PowerTask(SignalRestart),
			`{"action":"power","payload":"restart","time_offset":0}`,
		},
		{
			"backup",
			BackupTask("cache/*", "logs/*"),
			`{"action":"backup","payload":"cache/*\nlogs/*","time_offset":0}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.params)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("marshal = %s, want %s", data, tt.want)
			}
		})
	}
}

func TestScheduleTaskPayloadHelpers(t *testing.T) {
	power := ScheduleTask{Action: TaskPower, Payload: "kill"}
	signal, err := power.PowerSignal()
	if err != nil {
		t.Fatalf("PowerSignal: %v", err)
	}
	if signal != SignalKill {
		t.Errorf("signal = %v, want SignalKill", signal)
	}

	command := ScheduleTask{Action: TaskCommand, Payload: "stop"}
	if _, err := command.PowerSignal(); err == nil {
		t.Error("PowerSignal on a command task did not fail")
	}

	backup := ScheduleTask{Action: TaskBackup, Payload: "cache/*\n\nlogs/*"}
	files := backup.IgnoredFiles()
	if len(files) != 2 || files[0] != "cache/*" || files[1] != "logs/*" {
		t.Errorf("IgnoredFiles = %v", files)
	}
}

func TestScheduleDecodesTasks(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"object": "server_schedule",
			"attributes": {
				"id": 4,
				"name": "nightly",
				"cron": {"minute":"0","hour":"3","day_of_month":"*","month":"*","day_of_week":"*"},
				"is_active": true,
				"is_processing": false,
				"last_run_at": null,
				"next_run_at": "2026-08-31T03:00:00+00:00",
				"created_at": "2026-08-01T12:00:00+00:00",
				"updated_at": "2026-08-01T12:00:00+00:00",
				"relationships": {
					"tasks": {
						"object": "list",
						"data": [
							{"object":"schedule_task","attributes":{
								"id":10,"sequence_id":1,"action":"power","payload":"restart",
								"time_offset":0,"is_queued":false,
								"created_at":"2026-08-01T12:00:00+00:00",
								"updated_at":"2026-08-01T12:00:00+00:00"
							}},
							{"object":"schedule_task","attributes":{
								"id":11,"sequence_id":2,"action":"backup","payload":"",
								"time_offset":60,"is_queued":false,
								"created_at":"2026-08-01T12:00:00+00:00",
								"updated_at":"2026-08-01T12:00:00+00:00"
							}}
						]
					}
				}
			}
		}`))
	})

	sched, err := c.Server("abc").Schedule(context.Background(), 4)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if sched.Name != "nightly" || !sched.IsActive {
		t.Errorf("schedule = %+v", sched)
	}
	if sched.LastRunAt != nil {
		t.Errorf("LastRunAt = %v, want nil", sched.LastRunAt)
	}
	if sched.NextRunAt == nil {
		t.Error("NextRunAt = nil")
	}
	tasks := sched.Relationships.Tasks
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	if tasks[0].Action != TaskPower || tasks[0].Payload != "restart" {
		t.Errorf("task 0 = %+v", tasks[0])
	}
	if tasks[1].Action != TaskBackup || tasks[1].TimeOffset != 60 {
		t.Errorf("task 1 = %+v", tasks[1])
	}
}

func TestTaskEndpoints(t *testing.T) {
	type captured struct {
		method, path string
	}
	var reqs []captured
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		reqs = append(reqs, captured{r.Method, r.URL.Path})
		w.Write([]byte(`{"object":"schedule_task","attributes":{"id":1,"sequence_id":1,"action":"command","payload":"x","time_offset":0}}`))
	})
	srv := c.Server("abc")
	ctx := context.Background()

	if _, err := srv.CreateTask(ctx, 4, CommandTask("x")); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if _, err := srv.UpdateTask(ctx, 4, 1, CommandTask("x")); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if err := srv.DeleteTask(ctx, 4, 1); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}

	want := []captured{
		{"POST", "/api/client/servers/abc/schedules/4/tasks"},
		{"POST", "/api/client/servers/abc/schedules/4/tasks/1"},
		{"DELETE", "/api/client/servers/abc/schedules/4/tasks/1"},
	}
	if len(reqs) != len(want) {
		t.Fatalf("requests = %v, want %v", reqs, want)
	}
	for i := range want {
		if reqs[i] != want[i] {
			t.Errorf("request %d = %+v, want %+v", i, reqs[i], want[i])
		}
	}
}
