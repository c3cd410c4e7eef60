package handlers_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"teamtasks/internal/domain"
	"teamtasks/internal/repository"
)

// memDB backs in-memory implementations of the store interfaces, so handler
// tests run without a database. The wrapper types below exist because the
// interfaces reuse method names with different signatures.
type memDB struct {
	users    map[int64]*domain.User
	teams    map[int64]*domain.Team
	tasks    map[int64]*taskRow
	comments map[int64]*domain.Comment
	nextID   int64
}

type taskRow struct {
	ID          int64
	TeamID      int64
	Title       string
	Description string
	Status      domain.TaskStatus
	AssignedTo  *int64
	CreatedBy   int64
	CreatedAt   time.Time
}

func newMemDB() *memDB {
	return &memDB{
		users:    make(map[int64]*domain.User),
		teams:    make(map[int64]*domain.Team),
		tasks:    make(map[int64]*taskRow),
		comments: make(map[int64]*domain.Comment),
	}
}

func (m *memDB) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memDB) userRef(id int64) domain.UserRef {
	if u, ok := m.users[id]; ok {
		return u.Ref()
	}
	return domain.UserRef{ID: id}
}

type fakeUsers struct{ *memDB }

func (f fakeUsers) Create(ctx context.Context, u *domain.User) error {
	for _, existing := range f.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return repository.ErrDuplicate
		}
	}
	u.ID = f.id()
	u.CreatedAt = time.Now()
	f.users[u.ID] = u
	return nil
}

func (f fakeUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f fakeUsers) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

type fakeTeams struct{ *memDB }

func (f fakeTeams) Create(ctx context.Context, name, description string, creatorID int64) (int64, error) {
	t := &domain.Team{
		ID:          f.id(),
		Name:        name,
		Description: description,
		Creator:     f.userRef(creatorID),
		Members:     []domain.UserRef{f.userRef(creatorID)},
		CreatedAt:   time.Now(),
	}
	f.teams[t.ID] = t
	return t.ID, nil
}

func (f fakeTeams) GetByID(ctx context.Context, id int64) (*domain.Team, error) {
	t, ok := f.teams[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *t
	cp.Members = append([]domain.UserRef(nil), t.Members...)
	return &cp, nil
}

func (f fakeTeams) ListByMember(ctx context.Context, userID int64) ([]*domain.Team, error) {
	var teams []*domain.Team
	for _, t := range f.teams {
		if t.HasMember(userID) {
			teams = append(teams, t)
		}
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].ID > teams[j].ID })
	return teams, nil
}

func (f fakeTeams) AddMember(ctx context.Context, teamID, userID int64) (bool, error) {
	t, ok := f.teams[teamID]
	if !ok {
		return false, repository.ErrNotFound
	}
	if t.HasMember(userID) {
		return false, nil
	}
	t.Members = append(t.Members, f.userRef(userID))
	return true, nil
}

func (f fakeTeams) RemoveMember(ctx context.Context, teamID, userID int64) (bool, error) {
	t, ok := f.teams[teamID]
	if !ok {
		return false, repository.ErrNotFound
	}
	for i, m := range t.Members {
		if m.ID == userID {
			t.Members = append(t.Members[:i], t.Members[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type fakeTasks struct{ *memDB }

func (f fakeTasks) Create(ctx context.Context, teamID int64, title, description string, status domain.TaskStatus, assignedTo *int64, createdBy int64) (int64, error) {
	row := &taskRow{
		ID:          f.id(),
		TeamID:      teamID,
		Title:       title,
		Description: description,
		Status:      status,
		AssignedTo:  assignedTo,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now(),
	}
	f.tasks[row.ID] = row
	return row.ID, nil
}

func (f fakeTasks) GetByID(ctx context.Context, teamID, taskID int64) (*domain.Task, error) {
	row, ok := f.tasks[taskID]
	if !ok || row.TeamID != teamID {
		return nil, repository.ErrNotFound
	}
	return f.populate(row), nil
}

func (f fakeTasks) List(ctx context.Context, teamID int64, filter domain.TaskFilter) ([]*domain.Task, int, error) {
	var rows []*taskRow
	for _, row := range f.tasks {
		if row.TeamID != teamID {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(row.Title), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.AssignedTo != nil && (row.AssignedTo == nil || *row.AssignedTo != *filter.AssignedTo) {
			continue
		}
		if filter.Status != nil && row.Status != *filter.Status {
			continue
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID > rows[j].ID })

	total := len(rows)
	if filter.Offset >= total {
		rows = nil
	} else {
		rows = rows[filter.Offset:]
		if filter.Limit < len(rows) {
			rows = rows[:filter.Limit]
		}
	}

	tasks := make([]*domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, f.populate(row))
	}
	return tasks, total, nil
}

func (f fakeTasks) Update(ctx context.Context, teamID, taskID int64, title, description string, status domain.TaskStatus, assignedTo *int64) error {
	row, ok := f.tasks[taskID]
	if !ok || row.TeamID != teamID {
		return repository.ErrNotFound
	}
	row.Title = title
	row.Description = description
	row.Status = status
	row.AssignedTo = assignedTo
	return nil
}

func (f fakeTasks) Delete(ctx context.Context, teamID, taskID int64) (bool, error) {
	row, ok := f.tasks[taskID]
	if !ok || row.TeamID != teamID {
		return false, nil
	}
	delete(f.tasks, taskID)
	return true, nil
}

func (f fakeTasks) populate(row *taskRow) *domain.Task {
	t := &domain.Task{
		ID:          row.ID,
		TeamID:      row.TeamID,
		Title:       row.Title,
		Description: row.Description,
		Status:      row.Status,
		CreatedBy:   f.userRef(row.CreatedBy),
		CreatedAt:   row.CreatedAt,
	}
	if row.AssignedTo != nil {
		ref := f.userRef(*row.AssignedTo)
		t.AssignedTo = &ref
	}
	return t
}

type fakeComments struct{ *memDB }

func (f fakeComments) Create(ctx context.Context, taskID int64, text string, createdBy int64) (int64, error) {
	cm := &domain.Comment{
		ID:        f.id(),
		TaskID:    taskID,
		Text:      text,
		CreatedBy: f.userRef(createdBy),
		CreatedAt: time.Now(),
	}
	f.comments[cm.ID] = cm
	return cm.ID, nil
}

func (f fakeComments) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	cm, ok := f.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cm, nil
}

func (f fakeComments) ListByTask(ctx context.Context, taskID int64) ([]*domain.Comment, error) {
	var comments []*domain.Comment
	for _, cm := range f.comments {
		if cm.TaskID == taskID {
			comments = append(comments, cm)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID > comments[j].ID })
	return comments, nil
}

// recordedEvent captures Notifier pushes for assertions.
type recordedEvent struct {
	TeamID int64
	Type   string
}

type fakeNotifier struct {
	events []recordedEvent
}

func (f *fakeNotifier) Publish(teamID int64, eventType string, data any) {
	f.events = append(f.events, recordedEvent{TeamID: teamID, Type: eventType})
}
