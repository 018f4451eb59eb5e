package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"matchday.fit/fixturecast/internal/geo"
	"matchday.fit/fixturecast/internal/schedule"
)

// ScheduleStats aggregates what the API exposes under /api/v1/stats.
type ScheduleStats struct {
	Runs             int64      `json:"runs"`
	Days             int64      `json:"days"`
	Events           int64      `json:"events"`
	SpecialEvents    int64      `json:"special_events"`
	SelectedUK       int64      `json:"selected_uk"`
	SelectedUS       int64      `json:"selected_us"`
	SelectedOther    int64      `json:"selected_other"`
	LastGeneratedAt  *time.Time `json:"last_generated_at,omitempty"`
	LastRunSource    string     `json:"last_run_source,omitempty"`
	LastRunDays      int        `json:"last_run_days"`
	LastRunSoccer    int        `json:"last_run_soccer_events"`
	LastRunNonSoccer int        `json:"last_run_non_soccer_events"`
}

// InsertScheduleRun persists one composed schedule payload as a run with
// its days, events, and per-event selection stats keyed by event key.
// The whole insert is transactional.
func (p *Pool) InsertScheduleRun(
	ctx context.Context,
	payload schedule.Payload,
	selections map[string]geo.SelectionStats,
) (int64, error) {
	if p == nil || p.gdb == nil {
		return 0, fmt.Errorf("database pool is not initialized")
	}

	generatedAt, err := time.Parse("2006-01-02T15:04:05Z", payload.GeneratedAt)
	if err != nil {
		generatedAt = time.Now().UTC()
	}

	run := ScheduleRun{
		Source:      payload.Source,
		GeneratedAt: generatedAt,
	}
	if payload.Composition != nil {
		run.SoccerEvents = payload.Composition.SoccerEvents
		run.NonSoccerEvents = payload.Composition.NonSoccerEvents
		run.Days = payload.Composition.Days
	}
	if payload.Enrichment != nil {
		run.MatchedEvents = payload.Enrichment.MatchedEvents
		run.ChannelsAdded = payload.Enrichment.ChannelsAdded
		run.LogosEnriched = payload.Enrichment.LogosAdded
		run.AmbiguousSkips = payload.Enrichment.AmbiguousKeySkipped
	}

	err = p.gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&run).Error; err != nil {
			return fmt.Errorf("insert schedule run: %w", err)
		}

		for _, day := range payload.Schedule {
			dayRow := ScheduleDay{
				RunID:   run.RunID,
				Date:    day.Date,
				DayName: day.Day,
			}
			if err := tx.Create(&dayRow).Error; err != nil {
				return fmt.Errorf("insert schedule day %s: %w", day.Date, err)
			}

			for _, event := range day.Events {
				eventRow, err := newScheduleEventRow(dayRow.DayID, event)
				if err != nil {
					return err
				}
				if err := tx.Create(eventRow).Error; err != nil {
					return fmt.Errorf("insert event %q: %w", event.Name, err)
				}

				stats, ok := selections[schedule.EventKey(event)]
				if !ok {
					continue
				}
				selectionRow := EventSelection{
					EventID:                eventRow.EventID,
					CandidatesMapped:       stats.CandidatesMapped,
					SelectedTotal:          stats.SelectedTotal,
					SelectedUK:             stats.SelectedUK,
					SelectedUS:             stats.SelectedUS,
					SelectedOther:          stats.SelectedOther,
					SelectedOtherPreferred: stats.SelectedOtherPreferred,
				}
				if err := tx.Create(&selectionRow).Error; err != nil {
					return fmt.Errorf("insert selection for %q: %w", event.Name, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return run.RunID, nil
}

func newScheduleEventRow(dayID int64, event schedule.Event) (*ScheduleEvent, error) {
	channelsJSON, err := json.Marshal(event.Channels)
	if err != nil {
		return nil, fmt.Errorf("encode channels for %q: %w", event.Name, err)
	}
	payloadJSON, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("encode event %q: %w", event.Name, err)
	}

	return &ScheduleEvent{
		DayID:           dayID,
		Name:            event.Name,
		StartTimeISO:    optionalText(event.StartTimeISO),
		EventTime:       optionalText(event.Time),
		Sport:           optionalText(event.Sport),
		Competition:     optionalText(event.Competition),
		Country:         optionalText(event.Country),
		HomeTeam:        optionalText(event.HomeTeam),
		AwayTeam:        optionalText(event.AwayTeam),
		HomeTeamID:      event.HomeTeamID,
		AwayTeamID:      event.AwayTeamID,
		HomeTeamLogo:    optionalText(event.HomeTeamLogo),
		AwayTeamLogo:    optionalText(event.AwayTeamLogo),
		SportLogo:       optionalText(event.SportLogo),
		CompetitionLogo: optionalText(event.CompetitionLogo),
		MatchURL:        optionalText(event.MatchURL),
		Special:         event.Special,
		Channels:        channelsJSON,
		Payload:         payloadJSON,
	}, nil
}

// LatestSchedule reconstructs the most recent published schedule payload.
func (p *Pool) LatestSchedule(ctx context.Context) (*schedule.Payload, error) {
	run, err := p.latestRun(ctx)
	if err != nil {
		return nil, err
	}
	return p.scheduleForRun(ctx, run)
}

// ScheduleDayByDate returns the day with the given YYYY-MM-DD date from
// the most recent run, or ErrNoRows when the date is absent.
func (p *Pool) ScheduleDayByDate(ctx context.Context, date string) (*schedule.Day, error) {
	run, err := p.latestRun(ctx)
	if err != nil {
		return nil, err
	}

	var dayRow ScheduleDay
	err = p.gdb.WithContext(ctx).
		Where("run_id = ? AND date = ?", run.RunID, date).
		First(&dayRow).Error
	if err != nil {
		if IsNoRows(err) || err == gorm.ErrRecordNotFound {
			return nil, ErrNoRows
		}
		return nil, fmt.Errorf("query schedule day: %w", err)
	}

	day, err := p.loadDayEvents(ctx, dayRow)
	if err != nil {
		return nil, err
	}
	return day, nil
}

// Stats aggregates run/day/event counts plus the selection totals.
func (p *Pool) Stats(ctx context.Context) (*ScheduleStats, error) {
	if p == nil || p.gdb == nil {
		return nil, fmt.Errorf("database pool is not initialized")
	}

	const totalsQuery = `
SELECT
  (SELECT COUNT(*) FROM fixture.schedule_runs)::BIGINT,
  (SELECT COUNT(*) FROM fixture.schedule_days)::BIGINT,
  (SELECT COUNT(*) FROM fixture.schedule_events)::BIGINT,
  (SELECT COUNT(*) FROM fixture.schedule_events WHERE special)::BIGINT,
  COALESCE((SELECT SUM(selected_uk) FROM fixture.event_selections), 0)::BIGINT,
  COALESCE((SELECT SUM(selected_us) FROM fixture.event_selections), 0)::BIGINT,
  COALESCE((SELECT SUM(selected_other) FROM fixture.event_selections), 0)::BIGINT
`
	var stats ScheduleStats
	if err := p.QueryRow(ctx, totalsQuery).Scan(
		&stats.Runs,
		&stats.Days,
		&stats.Events,
		&stats.SpecialEvents,
		&stats.SelectedUK,
		&stats.SelectedUS,
		&stats.SelectedOther,
	); err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}

	run, err := p.latestRun(ctx)
	if err != nil {
		if IsNoRows(err) {
			return &stats, nil
		}
		return nil, err
	}
	stats.LastGeneratedAt = &run.GeneratedAt
	stats.LastRunSource = run.Source
	stats.LastRunDays = run.Days
	stats.LastRunSoccer = run.SoccerEvents
	stats.LastRunNonSoccer = run.NonSoccerEvents
	return &stats, nil
}

func (p *Pool) latestRun(ctx context.Context) (*ScheduleRun, error) {
	if p == nil || p.gdb == nil {
		return nil, fmt.Errorf("database pool is not initialized")
	}
	var run ScheduleRun
	err := p.gdb.WithContext(ctx).
		Order("run_id DESC").
		First(&run).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNoRows
		}
		return nil, fmt.Errorf("query latest run: %w", err)
	}
	return &run, nil
}

func (p *Pool) scheduleForRun(ctx context.Context, run *ScheduleRun) (*schedule.Payload, error) {
	var dayRows []ScheduleDay
	err := p.gdb.WithContext(ctx).
		Where("run_id = ?", run.RunID).
		Order("date ASC").
		Find(&dayRows).Error
	if err != nil {
		return nil, fmt.Errorf("query schedule days: %w", err)
	}

	payload := &schedule.Payload{
		GeneratedAt: run.GeneratedAt.Format("2006-01-02T15:04:05Z"),
		Source:      run.Source,
		Schedule:    make([]schedule.Day, 0, len(dayRows)),
		Composition: &schedule.Composition{
			SoccerEvents:    run.SoccerEvents,
			NonSoccerEvents: run.NonSoccerEvents,
			Days:            run.Days,
		},
	}
	for _, dayRow := range dayRows {
		day, err := p.loadDayEvents(ctx, dayRow)
		if err != nil {
			return nil, err
		}
		payload.Schedule = append(payload.Schedule, *day)
	}
	return payload, nil
}

func (p *Pool) loadDayEvents(ctx context.Context, dayRow ScheduleDay) (*schedule.Day, error) {
	var eventRows []ScheduleEvent
	err := p.gdb.WithContext(ctx).
		Where("day_id = ?", dayRow.DayID).
		Order("event_id ASC").
		Find(&eventRows).Error
	if err != nil {
		return nil, fmt.Errorf("query events for %s: %w", dayRow.Date, err)
	}

	day := schedule.Day{
		Date:   dayRow.Date,
		Day:    dayRow.DayName,
		Events: make([]schedule.Event, 0, len(eventRows)),
	}
	for _, row := range eventRows {
		var event schedule.Event
		if err := json.Unmarshal(row.Payload, &event); err != nil {
			return nil, fmt.Errorf("decode event %d: %w", row.EventID, err)
		}
		day.Events = append(day.Events, event)
	}
	return &day, nil
}

func optionalText(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
