package internships

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/internforge/backend/internal/agent"
	"github.com/internforge/backend/internal/apperr"
	"github.com/internforge/backend/internal/llmjson"
	"github.com/internforge/backend/internal/locks"
	"github.com/internforge/backend/internal/models"
	"github.com/internforge/backend/internal/storage"
	"github.com/internforge/backend/pkg/logger"
	"github.com/internforge/backend/pkg/metrics"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Runner is the part of agent.Agent the planner needs.
type Runner interface {
	Name() string
	Run(ctx context.Context, userPrompt string) (string, error)
}

// GenerateRequest is what the learner asks for. Skills are [name, level] pairs.
type GenerateRequest struct {
	Domain        string     `json:"domain"`
	Title         string     `json:"title"`
	DurationWeeks int        `json:"durationWeeks"`
	DaysPerWeek   int        `json:"daysPerWeek"`
	Skills        [][]string `json:"skills"`
}

// Result carries the stored documents. Plan keeps the model's output as parsed.
type Result struct {
	InternshipID primitive.ObjectID
	Internship   *models.Internship
	WeeklyPlans  []models.WeeklyPlan
	Tasks        []models.Task
	Plan         *llmjson.Plan
}

type PlannerOptions struct {
	// LockTTL bounds how long one user's generation can block the next.
	LockTTL time.Duration
	// WriteTimeout bounds the document writes after the model replied.
	WriteTimeout time.Duration
}

// Planner turns a GenerateRequest into a stored internship with its weekly
// plans and tasks.
type Planner struct {
	agent    Runner
	locker   locks.Locker
	archive  storage.Archiver
	ins      InternshipRepository
	weeks    WeekRepository
	tasks    TaskRepository
	lockTTL  time.Duration
	writeTTL time.Duration
}

func NewPlanner(a Runner, l locks.Locker, arc storage.Archiver, in InternshipRepository, w WeekRepository, t TaskRepository, opts PlannerOptions) *Planner {
	if opts.LockTTL <= 0 {
		opts.LockTTL = 3 * time.Minute
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 30 * time.Second
	}
	if arc == nil {
		arc = storage.NopArchiver{}
	}
	return &Planner{agent: a, locker: l, archive: arc, ins: in, weeks: w, tasks: t, lockTTL: opts.LockTTL, writeTTL: opts.WriteTimeout}
}

// Generate runs the planner agent and stores the result. Only one generation
// per user runs at a time; a concurrent call gets a conflict error. The model
// call and the writes are detached from ctx cancellation.
func (p *Planner) Generate(ctx context.Context, userID primitive.ObjectID, req GenerateRequest) (*Result, error) {
	release, err := p.locker.Acquire(ctx, "plan:"+userID.Hex(), p.lockTTL)
	if errors.Is(err, locks.ErrHeld) {
		return nil, apperr.Conflict("plan generation already in progress")
	}
	if err != nil {
		return nil, fmt.Errorf("acquire plan lock: %w", err)
	}
	defer release()

	ctx = context.WithoutCancel(ctx)

	prompt, err := agent.PlanPrompt(req)
	if err != nil {
		return nil, err
	}
	raw, err := p.agent.Run(ctx, prompt)
	if err != nil {
		return nil, apperr.Upstream("plan generation failed", err)
	}
	p.keep(ctx, raw)

	plan, err := llmjson.DecodePlan(raw)
	if err != nil {
		metrics.OutputRejected.WithLabelValues("plan", llmjson.Stage(err)).Inc()
		logger.Warnw("planner output rejected", "user", userID.Hex(), "stage", llmjson.Stage(err), "err", err)
		return nil, apperr.Upstream("plan output rejected", err)
	}

	wctx, cancel := context.WithTimeout(ctx, p.writeTTL)
	defer cancel()
	res, err := p.store(wctx, userID, req, plan)
	if err != nil {
		return nil, err
	}
	res.Plan = plan
	logger.Infow("internship generated", "user", userID.Hex(), "internship", res.InternshipID.Hex(), "weeks", len(res.WeeklyPlans), "tasks", len(res.Tasks))
	return res, nil
}

func (p *Planner) keep(ctx context.Context, raw string) {
	key, err := p.archive.Archive(ctx, p.agent.Name(), raw)
	if err != nil {
		logger.Warnf("archive planner output: %v", err)
		return
	}
	if key != "" {
		logger.Debugf("planner output archived at %s", key)
	}
}

// store writes internship, weeks and tasks in that order. A failed write
// undoes the earlier ones in reverse order and returns the write error.
func (p *Planner) store(ctx context.Context, userID primitive.ObjectID, req GenerateRequest, plan *llmjson.Plan) (*Result, error) {
	var undo []func(context.Context) error
	fail := func(err error) (*Result, error) {
		p.compensate(undo)
		return nil, err
	}

	now := time.Now().UTC()
	in := &models.Internship{
		UserID:        userID,
		Domain:        orDefault(plan.Internship.Domain, req.Domain),
		Title:         orDefault(plan.Internship.Title, req.Title),
		DurationWeeks: orDefaultInt(plan.Internship.DurationWeeks, req.DurationWeeks),
		DaysPerWeek:   orDefaultInt(plan.Internship.DaysPerWeek, req.DaysPerWeek),
		Status:        plan.Internship.Status,
		CreatedAt:     now,
	}
	if err := p.ins.Create(ctx, in); err != nil {
		return fail(fmt.Errorf("insert internship: %w", err))
	}
	undo = append(undo, func(c context.Context) error { return p.ins.Delete(c, in.ID) })

	res := &Result{
		InternshipID: in.ID,
		Internship:   in,
		WeeklyPlans:  make([]models.WeeklyPlan, 0, len(plan.WeeklyPlans)),
		Tasks:        make([]models.Task, 0, len(plan.Tasks)),
	}
	weekIDs := make(map[int]primitive.ObjectID, len(plan.WeeklyPlans))
	undo = append(undo, func(c context.Context) error { return p.weeks.DeleteByInternship(c, in.ID) })
	for _, w := range plan.WeeklyPlans {
		doc := &models.WeeklyPlan{
			InternshipID:       in.ID,
			WeekNumber:         w.WeekNumber,
			LearningObjectives: w.LearningObjectives,
			CreatedAt:          now,
		}
		if err := p.weeks.Create(ctx, doc); err != nil {
			return fail(fmt.Errorf("insert week %d: %w", w.WeekNumber, err))
		}
		weekIDs[w.WeekNumber] = doc.ID
		res.WeeklyPlans = append(res.WeeklyPlans, *doc)
	}

	undo = append(undo, func(c context.Context) error { return p.tasks.DeleteByInternship(c, in.ID) })
	for i, t := range plan.Tasks {
		doc := &models.Task{
			InternshipID:         in.ID,
			WeekID:               weekIDs[t.WeekNumber],
			Title:                t.Title,
			ContentType:          t.ContentType,
			Description:          t.Description,
			ExpectedDeliverables: t.ExpectedDeliverables,
			EstimatedHours:       t.EstimatedHours,
			Difficulty:           t.Difficulty,
			CreatedAt:            now,
		}
		if err := p.tasks.Create(ctx, doc); err != nil {
			return fail(fmt.Errorf("insert task %d: %w", i, err))
		}
		res.Tasks = append(res.Tasks, *doc)
	}
	return res, nil
}

func (p *Planner) compensate(undo []func(context.Context) error) {
	if len(undo) == 0 {
		return
	}
	metrics.PlanCompensations.Inc()
	ctx, cancel := context.WithTimeout(context.Background(), p.writeTTL)
	defer cancel()
	for i := len(undo) - 1; i >= 0; i-- {
		if err := undo[i](ctx); err != nil {
			logger.Errorf("plan compensation step %d failed: %v", i, err)
		}
	}
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func orDefaultInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
