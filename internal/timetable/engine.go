package timetable

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/opt-telecom/horarios-api/internal/models"
)

// Rejection reasons attached to request outcomes and placement attempts.
const (
	ReasonNotQualified     = "professor not qualified for subject"
	ReasonLoadCapExceeded  = "professor weekly load cap exceeded"
	ReasonUnavailable      = "outside professor availability"
	ReasonProfessorBlocked = "professor blacked out by restriction"
	ReasonProfessorBusy    = "professor already booked"
	ReasonRoomBlocked      = "room blacked out by restriction"
	ReasonRoomBusy         = "room already booked"
	ReasonSectionBusy      = "section already booked"
	ReasonSubjectRoomBar   = "subject barred from room"
	ReasonRoomUnsuitable   = "room does not meet subject requirements"
)

// Config shapes the slot grid and the search budget.
//
// A Seed of zero draws a fresh seed per run; any other value makes runs
// reproducible. AttemptFactor bounds the random search at
// AttemptFactor * len(slot grid) attempts per hour bucket.
type Config struct {
	Days          []string
	DayStart      Clock
	DayEnd        Clock
	BlockHours    int
	AttemptFactor int
	Seed          int64
}

func (c Config) withDefaults() Config {
	if len(c.Days) == 0 {
		c.Days = []string{Monday, Tuesday, Wednesday, Thursday, Friday}
	}
	if c.DayStart == 0 && c.DayEnd == 0 {
		c.DayStart = 8 * 60
		c.DayEnd = 18 * 60
	}
	if c.BlockHours <= 0 {
		c.BlockHours = 2
	}
	if c.AttemptFactor <= 0 {
		c.AttemptFactor = 100
	}
	return c
}

func (c Config) validate() error {
	for _, day := range c.Days {
		if !ValidDay(day) {
			return fmt.Errorf("unknown day %q in generator config", day)
		}
	}
	if c.DayStart >= c.DayEnd {
		return errors.New("generator day start must precede day end")
	}
	if Clock(c.BlockHours*60) > c.DayEnd-c.DayStart {
		return errors.New("generator block does not fit inside the day")
	}
	return nil
}

// Input is the master data snapshot one run operates on.
type Input struct {
	Period       string
	Professors   []models.Professor
	Subjects     []models.Subject
	Rooms        []models.Room
	Restrictions []models.Restriction
	Requests     []models.ClassRequest
}

// Outcome reports what happened to one teaching request.
type Outcome struct {
	RequestID string                   `json:"request_id"`
	State     models.ClassRequestState `json:"state"`
	Reason    string                   `json:"reason,omitempty"`
}

// Shortfall reports weekly demand the run could not place.
type Shortfall struct {
	SubjectID    string           `json:"subject_id"`
	SubjectName  string           `json:"subject_name"`
	Section      string           `json:"section"`
	Kind         models.ClassKind `json:"class_kind"`
	MissingHours int              `json:"missing_hours"`
}

// Result is the full product of one run. Entries are not yet persisted;
// the caller commits them. Loads maps professor IDs to their committed
// weekly hours.
type Result struct {
	Seed       int64          `json:"seed"`
	Entries    []Entry        `json:"-"`
	Outcomes   []Outcome      `json:"outcomes"`
	Shortfalls []Shortfall    `json:"shortfalls"`
	Loads      map[string]int `json:"professor_loads"`
	Warnings   []string       `json:"warnings,omitempty"`
}

// Engine places teaching requests and weekly demand into the slot grid.
type Engine struct {
	cfg Config
	log *zap.Logger
}

// New builds an engine. A nil logger is replaced with a no-op one.
func New(cfg Config, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{cfg: cfg.withDefaults(), log: log}
}

// Run executes both phases over the snapshot: first every teaching request
// is validated against its suggested slot exactly as given, then remaining
// weekly demand is filled by randomized search. Requests whose suggestion is
// rejected are not retried elsewhere.
func (e *Engine) Run(ctx context.Context, in Input) (*Result, error) {
	if err := e.cfg.validate(); err != nil {
		return nil, err
	}

	res := &Result{}

	professors := make(map[string]Professor, len(in.Professors))
	for _, raw := range in.Professors {
		p, warns := DecodeProfessor(raw)
		professors[p.ID] = p
		res.Warnings = append(res.Warnings, warns...)
	}
	subjects := make([]Subject, 0, len(in.Subjects))
	subjectByID := make(map[string]Subject, len(in.Subjects))
	for _, raw := range in.Subjects {
		s, warns := DecodeSubject(raw)
		subjects = append(subjects, s)
		subjectByID[s.ID] = s
		res.Warnings = append(res.Warnings, warns...)
	}
	rooms := make([]Room, 0, len(in.Rooms))
	roomByID := make(map[string]Room, len(in.Rooms))
	for _, raw := range in.Rooms {
		r, warns := DecodeRoom(raw)
		rooms = append(rooms, r)
		roomByID[r.ID] = r
		res.Warnings = append(res.Warnings, warns...)
	}

	index, warns := BuildRestrictionIndex(in.Restrictions)
	res.Warnings = append(res.Warnings, warns...)

	occupancy := NewOccupancy()
	slots := e.slotGrid()

	seed := e.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	res.Seed = seed
	rng := rand.New(rand.NewSource(seed))

	placed := make(map[bucketKey]int)
	for _, raw := range in.Requests {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res.Outcomes = append(res.Outcomes, e.placeRequest(raw, in.Period, professors, subjectByID, roomByID, index, occupancy, placed, res))
	}

	if err := e.fillDemand(ctx, rng, slots, in.Period, professors, subjects, rooms, index, occupancy, placed, res); err != nil {
		return nil, err
	}
	res.Loads = occupancy.Loads()

	sort.Slice(res.Entries, func(i, j int) bool {
		a, b := res.Entries[i], res.Entries[j]
		if a.Day != b.Day {
			return DayRank(a.Day) < DayRank(b.Day)
		}
		if a.Interval.Start != b.Interval.Start {
			return a.Interval.Start < b.Interval.Start
		}
		return a.SubjectID < b.SubjectID
	})

	e.log.Info("generation run finished",
		zap.String("period", in.Period),
		zap.Int64("seed", seed),
		zap.Int("entries", len(res.Entries)),
		zap.Int("requests", len(res.Outcomes)),
		zap.Int("shortfalls", len(res.Shortfalls)),
		zap.Int("warnings", len(res.Warnings)))
	return res, nil
}

// bucketKey identifies one (subject, section, kind) hour bucket. Minutes
// committed through requests are deducted from the bucket before the fill
// phase runs.
type bucketKey struct {
	subjectID string
	section   string
	kind      models.ClassKind
}

// placeRequest validates one request against its suggested slot. Broken or
// dangling requests become ERROR; suggestions rejected by a check become
// FAILED with the first failing reason.
func (e *Engine) placeRequest(raw models.ClassRequest, period string, professors map[string]Professor, subjects map[string]Subject, rooms map[string]Room, index *RestrictionIndex, occupancy *Occupancy, placed map[bucketKey]int, res *Result) Outcome {
	req, err := DecodeRequest(raw)
	if err != nil {
		return Outcome{RequestID: raw.ID, State: models.ClassRequestError, Reason: err.Error()}
	}
	prof, ok := professors[req.ProfessorID]
	if !ok {
		return Outcome{RequestID: req.ID, State: models.ClassRequestError, Reason: fmt.Sprintf("unknown professor %s", req.ProfessorID)}
	}
	subj, ok := subjects[req.SubjectID]
	if !ok {
		return Outcome{RequestID: req.ID, State: models.ClassRequestError, Reason: fmt.Sprintf("unknown subject %s", req.SubjectID)}
	}
	room, ok := rooms[req.RoomID]
	if !ok {
		return Outcome{RequestID: req.ID, State: models.ClassRequestError, Reason: fmt.Sprintf("unknown room %s", req.RoomID)}
	}

	if reason := checkSlot(occupancy, index, prof, subj, room, req.Day, req.Interval, req.Section); reason != "" {
		return Outcome{RequestID: req.ID, State: models.ClassRequestFailed, Reason: reason}
	}

	entry := Entry{
		ProfessorID: prof.ID,
		SubjectID:   subj.ID,
		RoomID:      room.ID,
		Day:         req.Day,
		Interval:    req.Interval,
		Kind:        req.Kind,
		Section:     req.Section,
		Period:      period,
		Program:     req.Program,
	}
	occupancy.Commit(entry)
	res.Entries = append(res.Entries, entry)
	placed[bucketKey{subjectID: subj.ID, section: req.Section, kind: req.Kind}] += req.Interval.Duration()
	return Outcome{RequestID: req.ID, State: models.ClassRequestAssigned}
}

// fillDemand places the remaining weekly hours of every subject section by
// randomized search, heaviest subjects first, lectures before practice
// before lab. Hours already committed through requests are deducted from
// their bucket. Each bucket gets AttemptFactor * len(slots) attempts;
// whatever is still unplaced is reported as a shortfall.
func (e *Engine) fillDemand(ctx context.Context, rng *rand.Rand, slots []busySlot, period string, professors map[string]Professor, subjects []Subject, rooms []Room, index *RestrictionIndex, occupancy *Occupancy, placed map[bucketKey]int, res *Result) error {
	if len(slots) == 0 || len(rooms) == 0 || len(professors) == 0 {
		return nil
	}

	sort.Slice(subjects, func(i, j int) bool {
		if subjects[i].TotalHours() != subjects[j].TotalHours() {
			return subjects[i].TotalHours() > subjects[j].TotalHours()
		}
		return subjects[i].Name < subjects[j].Name
	})

	allProfessors := make([]Professor, 0, len(professors))
	for _, p := range professors {
		allProfessors = append(allProfessors, p)
	}
	sort.Slice(allProfessors, func(i, j int) bool { return allProfessors[i].ID < allProfessors[j].ID })

	blockMinutes := e.cfg.BlockHours * 60
	budget := e.cfg.AttemptFactor * len(slots)

	for _, subj := range subjects {
		if err := ctx.Err(); err != nil {
			return err
		}

		candidates := allProfessors
		if len(subj.Qualified) > 0 {
			candidates = candidates[:0:0]
			for _, p := range allProfessors {
				if subj.QualifiedFor(p.ID) {
					candidates = append(candidates, p)
				}
			}
		}
		if len(candidates) == 0 {
			for _, kind := range models.ClassKinds {
				if subj.Hours[kind] > 0 {
					for section := 1; section <= subj.Sections; section++ {
						res.Shortfalls = append(res.Shortfalls, Shortfall{
							SubjectID:    subj.ID,
							SubjectName:  subj.Name,
							Section:      sectionLabel(section),
							Kind:         kind,
							MissingHours: subj.Hours[kind],
						})
					}
				}
			}
			res.Warnings = append(res.Warnings, fmt.Sprintf("subject %s: no qualified professors", subj.ID))
			continue
		}

		for section := 1; section <= subj.Sections; section++ {
			label := sectionLabel(section)
			for _, kind := range models.ClassKinds {
				remaining := subj.Hours[kind]*60 - placed[bucketKey{subjectID: subj.ID, section: label, kind: kind}]
				if remaining <= 0 {
					continue
				}
				for attempts := 0; remaining > 0 && attempts < budget; attempts++ {
					slot := slots[rng.Intn(len(slots))]
					length := blockMinutes
					if remaining < length {
						// Short final block so the bucket lands exactly
						// on its weekly demand.
						length = remaining
					}
					iv := Interval{Start: slot.iv.Start, End: slot.iv.Start + Clock(length)}
					prof := candidates[rng.Intn(len(candidates))]
					room := rooms[rng.Intn(len(rooms))]
					if checkSlot(occupancy, index, prof, subj, room, slot.day, iv, label) != "" {
						continue
					}
					entry := Entry{
						ProfessorID: prof.ID,
						SubjectID:   subj.ID,
						RoomID:      room.ID,
						Day:         slot.day,
						Interval:    iv,
						Kind:        kind,
						Section:     label,
						Period:      period,
						Program:     subj.Program,
					}
					occupancy.Commit(entry)
					res.Entries = append(res.Entries, entry)
					remaining -= length
				}
				if remaining > 0 {
					res.Shortfalls = append(res.Shortfalls, Shortfall{
						SubjectID:    subj.ID,
						SubjectName:  subj.Name,
						Section:      label,
						Kind:         kind,
						MissingHours: (remaining + 59) / 60,
					})
				}
			}
		}
	}
	return nil
}

// checkSlot applies every placement rule in order and returns the first
// failing reason, or "" when the slot is acceptable.
func checkSlot(occupancy *Occupancy, index *RestrictionIndex, prof Professor, subj Subject, room Room, day string, iv Interval, section string) string {
	if !subj.QualifiedFor(prof.ID) {
		return ReasonNotQualified
	}
	if prof.MaxWeeklyMinutes > 0 && occupancy.Load(prof.ID)+iv.Duration() > prof.MaxWeeklyMinutes {
		return ReasonLoadCapExceeded
	}
	if !prof.Availability.Allows(day, iv) {
		return ReasonUnavailable
	}
	if index.ProfessorBlocked(prof.ID, day, iv) {
		return ReasonProfessorBlocked
	}
	if !occupancy.ProfessorFree(prof.ID, day, iv) {
		return ReasonProfessorBusy
	}
	if index.RoomBlocked(room.ID, day, iv) {
		return ReasonRoomBlocked
	}
	if !occupancy.RoomFree(room.ID, day, iv) {
		return ReasonRoomBusy
	}
	if !occupancy.SectionFree(subj.ID, section, day, iv) {
		return ReasonSectionBusy
	}
	if index.SubjectRoomBarred(subj.ID, room.ID, day) {
		return ReasonSubjectRoomBar
	}
	if !subj.Requirement.Fits(room) {
		return ReasonRoomUnsuitable
	}
	return ""
}

func (e *Engine) slotGrid() []busySlot {
	block := Clock(e.cfg.BlockHours * 60)
	var grid []busySlot
	for _, day := range e.cfg.Days {
		for t := e.cfg.DayStart; t+block <= e.cfg.DayEnd; t += block {
			grid = append(grid, busySlot{day: day, iv: Interval{Start: t, End: t + block}})
		}
	}
	return grid
}

func sectionLabel(n int) string { return fmt.Sprintf("S%d", n) }
