package service

import (
	"context"
	"encoding/json"
	"exam_coach_backend/internal/model"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"
)

// memStore 内存版存储，行为与 repository 包的用户隔离语义一致
type memStore struct {
	mu        sync.Mutex
	questions []model.Question
	attempts  map[string]*model.ExamAttempt
	gaps      []*model.LearningGap
	tasks     []*model.DailyTask
	actions   []*model.UserAction
}

func newMemStore(questions ...model.Question) *memStore {
	return &memStore{questions: questions, attempts: map[string]*model.ExamAttempt{}}
}

func (s *memStore) nextID() string {
	return model.GenerateUUID()
}

type memPapers struct{ *memStore }

func (p memPapers) FindAll(context.Context) ([]model.ExamPaper, error) { return nil, nil }

func (p memPapers) FindByID(_ context.Context, id string) (*model.ExamPaper, error) {
	return &model.ExamPaper{UUIDBase: model.UUIDBase{ID: id}}, nil
}

func (p memPapers) FindQuestions(_ context.Context, paperID string, section model.SectionType) ([]model.Question, error) {
	var out []model.Question
	for _, q := range p.questions {
		if q.PaperID == paperID && (section == model.SectionFull || section == "" || q.SectionType == section) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}

func (p memPapers) FindQuestionByID(_ context.Context, id string) (*model.Question, error) {
	for i := range p.questions {
		if p.questions[i].ID == id {
			q := p.questions[i]
			return &q, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type memAttempts struct{ *memStore }

func (a memAttempts) Create(_ context.Context, attempt *model.ExamAttempt) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	attempt.ID = a.nextID()
	cp := *attempt
	a.attempts[attempt.ID] = &cp
	return nil
}

func (a memAttempts) FindByIDForUser(_ context.Context, userID uint, id string) (*model.ExamAttempt, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if at, ok := a.attempts[id]; ok && at.UserID == userID {
		cp := *at
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (a memAttempts) FindByUser(_ context.Context, userID uint, paperID string) ([]model.ExamAttempt, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []model.ExamAttempt
	for _, at := range a.attempts {
		if at.UserID == userID && (paperID == "" || at.PaperID == paperID) {
			out = append(out, *at)
		}
	}
	return out, nil
}

type memGaps struct{ *memStore }

func (g memGaps) Create(_ context.Context, gap *model.LearningGap) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	gap.ID = g.nextID()
	cp := *gap
	g.gaps = append(g.gaps, &cp)
	return nil
}

func (g memGaps) FindActiveByUser(ctx context.Context, userID uint) ([]model.LearningGap, error) {
	return g.FindByUser(ctx, userID, model.GapActive)
}

func (g memGaps) FindByUser(_ context.Context, userID uint, status model.GapStatus) ([]model.LearningGap, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []model.LearningGap
	for _, gap := range g.gaps {
		if gap.UserID != userID || (status != "" && gap.Status != status) {
			continue
		}
		cp := *gap
		for i := range g.questions {
			if g.questions[i].ID == gap.QuestionID {
				q := g.questions[i]
				cp.Question = &q
			}
		}
		out = append(out, cp)
	}
	return out, nil
}

func (g memGaps) FindByIDForUser(_ context.Context, userID uint, id string) (*model.LearningGap, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, gap := range g.gaps {
		if gap.ID == id && gap.UserID == userID {
			cp := *gap
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (g memGaps) MarkResolved(_ context.Context, userID uint, id string, at time.Time) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, gap := range g.gaps {
		if gap.ID == id && gap.UserID == userID && gap.Status == model.GapActive {
			gap.Status = model.GapResolved
			gap.ResolvedAt = &at
		}
	}
	return nil
}

type memTasks struct{ *memStore }

func (t memTasks) CreateBatch(_ context.Context, tasks []*model.DailyTask) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, task := range tasks {
		cp := *task
		t.tasks = append(t.tasks, &cp)
	}
	return nil
}

func (t memTasks) FindByIDForUser(_ context.Context, userID uint, id string) (*model.DailyTask, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, task := range t.tasks {
		if task.ID == id && task.UserID == userID {
			cp := *task
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (t memTasks) FindByUserAndRange(_ context.Context, userID uint, from, to string) ([]model.DailyTask, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []model.DailyTask
	for _, task := range t.tasks {
		if task.UserID == userID && task.ScheduledDate >= from && task.ScheduledDate <= to {
			out = append(out, *task)
		}
	}
	return out, nil
}

func (t memTasks) MarkCompleted(_ context.Context, userID uint, id string, at time.Time, data json.RawMessage) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, task := range t.tasks {
		if task.ID == id && task.UserID == userID && !task.IsCompleted {
			task.IsCompleted = true
			task.CompletedAt = &at
			task.CompletionData = data
		}
	}
	return nil
}

type memActions struct{ *memStore }

func (a memActions) Create(_ context.Context, action *model.UserAction) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actions = append(a.actions, action)
	return nil
}
