package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"stackit/internal/models"
	"stackit/internal/repository"
)

var errDuplicate = errors.New("duplicate key")

// memState is the whole in-memory database. Transactions snapshot it and
// restore the snapshot on error.
type memState struct {
	nextID        uint
	clock         time.Time
	users         map[uint]models.User
	questions     map[uint]models.Question
	tags          map[uint]models.Tag
	questionTags  []models.QuestionTag
	answers       map[uint]models.Answer
	votes         map[uint]models.Vote
	notifications map[uint]models.Notification
}

func (s *memState) clone() *memState {
	c := *s
	c.users = cloneMap(s.users)
	c.questions = cloneMap(s.questions)
	c.tags = cloneMap(s.tags)
	c.questionTags = append([]models.QuestionTag(nil), s.questionTags...)
	c.answers = cloneMap(s.answers)
	c.votes = cloneMap(s.votes)
	c.notifications = cloneMap(s.notifications)
	return &c
}

func cloneMap[V any](m map[uint]V) map[uint]V {
	out := make(map[uint]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// memRepository implements repository.Repository for service tests.
type memRepository struct {
	mu    sync.Mutex
	state *memState
	// failNotifications makes CreateNotification fail.
	failNotifications bool
}

func newMemRepository() *memRepository {
	return &memRepository{state: &memState{
		clock:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		users:         map[uint]models.User{},
		questions:     map[uint]models.Question{},
		tags:          map[uint]models.Tag{},
		answers:       map[uint]models.Answer{},
		votes:         map[uint]models.Vote{},
		notifications: map[uint]models.Notification{},
	}}
}

func (r *memRepository) id() uint {
	r.state.nextID++
	return r.state.nextID
}

// tick gives every row a distinct, increasing timestamp.
func (r *memRepository) tick() time.Time {
	r.state.clock = r.state.clock.Add(time.Second)
	return r.state.clock
}

func (r *memRepository) Transaction(ctx context.Context, fn func(tx repository.Repository) error) error {
	r.mu.Lock()
	snapshot := r.state.clone()
	r.mu.Unlock()

	if err := fn(r); err != nil {
		r.mu.Lock()
		r.state = snapshot
		r.mu.Unlock()
		return err
	}
	return nil
}

func (r *memRepository) CountUsers(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.state.users)), nil
}

func (r *memRepository) CreateUser(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.state.users {
		if u.Email == user.Email {
			return errDuplicate
		}
	}
	user.ID = r.id()
	user.CreatedAt = r.tick()
	r.state.users[user.ID] = *user
	return nil
}

func (r *memRepository) FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.state.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *memRepository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.state.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]models.User, 0, len(r.state.users))
	for _, u := range r.state.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *memRepository) UpdateUserRole(ctx context.Context, id uint, role models.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.state.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Role = role
	r.state.users[id] = u
	return nil
}

func (r *memRepository) CreateQuestion(ctx context.Context, q *models.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.state.users[q.UserID]; !ok {
		return errors.New("foreign key violation")
	}
	q.ID = r.id()
	q.CreatedAt = r.tick()
	q.UpdatedAt = q.CreatedAt
	r.state.questions[q.ID] = *q
	return nil
}

func (r *memRepository) FindQuestion(ctx context.Context, id uint) (*models.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.state.questions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	q.Author = r.state.users[q.UserID]
	return &q, nil
}

func (r *memRepository) ListQuestions(ctx context.Context, tag string) ([]models.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Question
	for _, q := range r.state.questions {
		if tag != "" && !r.hasTag(q.ID, tag) {
			continue
		}
		q.Author = r.state.users[q.UserID]
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memRepository) hasTag(questionID uint, name string) bool {
	for _, qt := range r.state.questionTags {
		if qt.QuestionID == questionID && r.state.tags[qt.TagID].Name == name {
			return true
		}
	}
	return false
}

func (r *memRepository) DeleteQuestion(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.state.questions[id]; !ok {
		return repository.ErrNotFound
	}
	for aid, a := range r.state.answers {
		if a.QuestionID == id {
			r.deleteVotesFor(aid)
			delete(r.state.answers, aid)
		}
	}
	kept := r.state.questionTags[:0]
	for _, qt := range r.state.questionTags {
		if qt.QuestionID != id {
			kept = append(kept, qt)
		}
	}
	r.state.questionTags = kept
	delete(r.state.questions, id)
	return nil
}

func (r *memRepository) deleteVotesFor(answerID uint) {
	for vid, v := range r.state.votes {
		if v.AnswerID == answerID {
			delete(r.state.votes, vid)
		}
	}
}

func (r *memRepository) AnswerCounts(ctx context.Context, questionIDs []uint) (map[uint]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[uint]int64{}
	for _, a := range r.state.answers {
		counts[a.QuestionID]++
	}
	return counts, nil
}

func (r *memRepository) TagNames(ctx context.Context, questionIDs []uint) (map[uint][]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := map[uint][]string{}
	for _, qt := range r.state.questionTags {
		names[qt.QuestionID] = append(names[qt.QuestionID], r.state.tags[qt.TagID].Name)
	}
	return names, nil
}

func (r *memRepository) FindOrCreateTag(ctx context.Context, name string) (*models.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.state.tags {
		if t.Name == name {
			return &t, nil
		}
	}
	t := models.Tag{ID: r.id(), Name: name, Color: models.DefaultTagColor}
	r.state.tags[t.ID] = t
	return &t, nil
}

func (r *memRepository) LinkTag(ctx context.Context, questionID, tagID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, qt := range r.state.questionTags {
		if qt.QuestionID == questionID && qt.TagID == tagID {
			return errDuplicate
		}
	}
	r.state.questionTags = append(r.state.questionTags, models.QuestionTag{QuestionID: questionID, TagID: tagID})
	return nil
}

func (r *memRepository) ListTags(ctx context.Context) ([]models.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var tags []models.Tag
	for _, t := range r.state.tags {
		tags = append(tags, t)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	return tags, nil
}

func (r *memRepository) CreateAnswer(ctx context.Context, a *models.Answer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = r.id()
	a.CreatedAt = r.tick()
	a.UpdatedAt = a.CreatedAt
	r.state.answers[a.ID] = *a
	return nil
}

func (r *memRepository) FindAnswer(ctx context.Context, id uint) (*models.Answer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.state.answers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (r *memRepository) ListAnswers(ctx context.Context, questionID uint) ([]models.Answer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Answer
	for _, a := range r.state.answers {
		if a.QuestionID == questionID {
			a.Author = r.state.users[a.UserID]
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memRepository) DeleteAnswer(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.state.answers[id]; !ok {
		return repository.ErrNotFound
	}
	r.deleteVotesFor(id)
	delete(r.state.answers, id)
	return nil
}

func (r *memRepository) ClearAccepted(ctx context.Context, questionID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, a := range r.state.answers {
		if a.QuestionID == questionID {
			a.IsAccepted = false
			r.state.answers[id] = a
		}
	}
	return nil
}

func (r *memRepository) SetAccepted(ctx context.Context, answerID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.state.answers[answerID]
	if !ok {
		return repository.ErrNotFound
	}
	a.IsAccepted = true
	r.state.answers[answerID] = a
	return nil
}

func (r *memRepository) FindVote(ctx context.Context, answerID, userID uint) (*models.Vote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.state.votes {
		if v.AnswerID == answerID && v.UserID == userID {
			return &v, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memRepository) CreateVote(ctx context.Context, vote *models.Vote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.state.votes {
		if v.AnswerID == vote.AnswerID && v.UserID == vote.UserID {
			return errDuplicate
		}
	}
	vote.ID = r.id()
	vote.CreatedAt = r.tick()
	r.state.votes[vote.ID] = *vote
	return nil
}

func (r *memRepository) UpdateVoteType(ctx context.Context, id uint, voteType models.VoteType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.state.votes[id]
	if !ok {
		return repository.ErrNotFound
	}
	v.VoteType = voteType
	r.state.votes[id] = v
	return nil
}

func (r *memRepository) DeleteVote(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.state.votes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.state.votes, id)
	return nil
}

func (r *memRepository) VoteTallies(ctx context.Context, answerIDs []uint) (map[uint]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tallies := map[uint]int64{}
	for _, v := range r.state.votes {
		switch v.VoteType {
		case models.VoteUp:
			tallies[v.AnswerID]++
		case models.VoteDown:
			tallies[v.AnswerID]--
		}
	}
	return tallies, nil
}

func (r *memRepository) CreateNotification(ctx context.Context, n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failNotifications {
		return errors.New("notification insert failed")
	}
	n.ID = r.id()
	n.CreatedAt = r.tick()
	r.state.notifications[n.ID] = *n
	return nil
}

func (r *memRepository) FindNotification(ctx context.Context, id uint) (*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.state.notifications[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &n, nil
}

func (r *memRepository) ListNotifications(ctx context.Context, userID uint, limit int) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Notification
	for _, n := range r.state.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memRepository) MarkNotificationRead(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.state.notifications[id]
	if !ok {
		return repository.ErrNotFound
	}
	n.IsRead = true
	r.state.notifications[id] = n
	return nil
}

func (r *memRepository) MarkAllNotificationsRead(ctx context.Context, userID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var updated int64
	for id, n := range r.state.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			r.state.notifications[id] = n
			updated++
		}
	}
	return updated, nil
}

func (r *memRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, n := range r.state.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

// notificationsFor returns every message sent to userID, oldest first.
func (r *memRepository) notificationsFor(userID uint) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ns []models.Notification
	for _, n := range r.state.notifications {
		if n.UserID == userID {
			ns = append(ns, n)
		}
	}
	sort.Slice(ns, func(i, j int) bool { return ns[i].ID < ns[j].ID })
	msgs := make([]string, len(ns))
	for i, n := range ns {
		msgs[i] = n.Message
	}
	return msgs
}
