package db

import (
	"encoding/json"
	"time"
)

// ScheduleRun maps fixture.schedule_runs, one row per published schedule.
type ScheduleRun struct {
	RunID           int64     `gorm:"column:run_id;primaryKey;autoIncrement"`
	RunUUID         string    `gorm:"column:run_uuid;type:uuid;not null;default:gen_random_uuid();unique"`
	Source          string    `gorm:"column:source;type:text;not null"`
	GeneratedAt     time.Time `gorm:"column:generated_at;type:timestamptz;not null"`
	SoccerEvents    int       `gorm:"column:soccer_events;type:integer;not null;default:0"`
	NonSoccerEvents int       `gorm:"column:non_soccer_events;type:integer;not null;default:0"`
	Days            int       `gorm:"column:days;type:integer;not null;default:0"`
	MatchedEvents   int       `gorm:"column:matched_events;type:integer;not null;default:0"`
	ChannelsAdded   int       `gorm:"column:channels_added;type:integer;not null;default:0"`
	LogosEnriched   int       `gorm:"column:logos_enriched;type:integer;not null;default:0"`
	AmbiguousSkips  int       `gorm:"column:ambiguous_skips;type:integer;not null;default:0"`
	CreatedAt       time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()"`
}

func (ScheduleRun) TableName() string { return "fixture.schedule_runs" }

// ScheduleDay maps fixture.schedule_days.
type ScheduleDay struct {
	DayID     int64     `gorm:"column:day_id;primaryKey;autoIncrement"`
	RunID     int64     `gorm:"column:run_id;type:bigint;not null;index"`
	Date      string    `gorm:"column:date;type:text;not null"`
	DayName   string    `gorm:"column:day_name;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()"`
}

func (ScheduleDay) TableName() string { return "fixture.schedule_days" }

// ScheduleEvent maps fixture.schedule_events. Channels holds the selected
// channel names in selection order; Payload keeps the full event document.
type ScheduleEvent struct {
	EventID         int64           `gorm:"column:event_id;primaryKey;autoIncrement"`
	DayID           int64           `gorm:"column:day_id;type:bigint;not null;index"`
	Name            string          `gorm:"column:name;type:text;not null"`
	StartTimeISO    *string         `gorm:"column:start_time_iso;type:text"`
	EventTime       *string         `gorm:"column:event_time;type:text"`
	Sport           *string         `gorm:"column:sport;type:text"`
	Competition     *string         `gorm:"column:competition;type:text"`
	Country         *string         `gorm:"column:country;type:text"`
	HomeTeam        *string         `gorm:"column:home_team;type:text"`
	AwayTeam        *string         `gorm:"column:away_team;type:text"`
	HomeTeamID      *int64          `gorm:"column:home_team_id;type:bigint"`
	AwayTeamID      *int64          `gorm:"column:away_team_id;type:bigint"`
	HomeTeamLogo    *string         `gorm:"column:home_team_logo;type:text"`
	AwayTeamLogo    *string         `gorm:"column:away_team_logo;type:text"`
	SportLogo       *string         `gorm:"column:sport_logo;type:text"`
	CompetitionLogo *string         `gorm:"column:competition_logo;type:text"`
	MatchURL        *string         `gorm:"column:match_url;type:text"`
	Special         bool            `gorm:"column:special;type:boolean;not null;default:false"`
	Channels        json.RawMessage `gorm:"column:channels;type:jsonb;not null"`
	Payload         json.RawMessage `gorm:"column:payload;type:jsonb;not null"`
	CreatedAt       time.Time       `gorm:"column:created_at;type:timestamptz;not null;default:now()"`
}

func (ScheduleEvent) TableName() string { return "fixture.schedule_events" }

// EventSelection maps fixture.event_selections, the per-event geo quota
// selection stats.
type EventSelection struct {
	SelectionID            int64     `gorm:"column:selection_id;primaryKey;autoIncrement"`
	EventID                int64     `gorm:"column:event_id;type:bigint;not null;index"`
	CandidatesMapped       int       `gorm:"column:candidates_mapped;type:integer;not null;default:0"`
	SelectedTotal          int       `gorm:"column:selected_total;type:integer;not null;default:0"`
	SelectedUK             int       `gorm:"column:selected_uk;type:integer;not null;default:0"`
	SelectedUS             int       `gorm:"column:selected_us;type:integer;not null;default:0"`
	SelectedOther          int       `gorm:"column:selected_other;type:integer;not null;default:0"`
	SelectedOtherPreferred int       `gorm:"column:selected_other_preferred;type:integer;not null;default:0"`
	CreatedAt              time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()"`
}

func (EventSelection) TableName() string { return "fixture.event_selections" }

func autoMigrateModels() []any {
	return []any{
		&ScheduleRun{},
		&ScheduleDay{},
		&ScheduleEvent{},
		&EventSelection{},
	}
}
