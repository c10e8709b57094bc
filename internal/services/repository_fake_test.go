package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/surveyhub/survey-service/internal/models"
	"github.com/surveyhub/survey-service/internal/repositories"
)

// fakeRepository is an in-memory stand-in for the Postgres repository. It
// implements just enough filtering behavior for the service tests.
type fakeRepository struct {
	mu sync.Mutex

	accounts      map[uint]*models.Account
	roles         map[models.RoleName]*models.Role
	categories    map[uint]*models.Category
	surveys       map[uint]*models.Survey
	questions     map[uint]*models.Question
	results       map[uint]*models.Result
	answers       map[uint]*models.Answer
	refreshTokens map[string]*models.RefreshToken

	nextID uint

	// skipAccountExistChecks makes ExistsByEmail/ExistsByUsername report
	// false, simulating a concurrent registration that slips past the
	// service's pre-checks and hits the unique indexes instead.
	skipAccountExistChecks bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		accounts:      make(map[uint]*models.Account),
		roles:         make(map[models.RoleName]*models.Role),
		categories:    make(map[uint]*models.Category),
		surveys:       make(map[uint]*models.Survey),
		questions:     make(map[uint]*models.Question),
		results:       make(map[uint]*models.Result),
		answers:       make(map[uint]*models.Answer),
		refreshTokens: make(map[string]*models.RefreshToken),
	}
}

func (r *fakeRepository) allocID() uint {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	return r.nextID
}

func (r *fakeRepository) Account() repositories.AccountRepository   { return &fakeAccountRepo{r} }
func (r *fakeRepository) Role() repositories.RoleRepository         { return &fakeRoleRepo{r} }
func (r *fakeRepository) Category() repositories.CategoryRepository { return &fakeCategoryRepo{r} }
func (r *fakeRepository) Survey() repositories.SurveyRepository     { return &fakeSurveyRepo{r} }
func (r *fakeRepository) Question() repositories.QuestionRepository { return &fakeQuestionRepo{r} }
func (r *fakeRepository) Result() repositories.ResultRepository     { return &fakeResultRepo{r} }
func (r *fakeRepository) Answer() repositories.AnswerRepository     { return &fakeAnswerRepo{r} }
func (r *fakeRepository) RefreshToken() repositories.RefreshTokenRepository {
	return &fakeRefreshTokenRepo{r}
}

func (r *fakeRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(r)
}

func (r *fakeRepository) Ping(ctx context.Context) error { return nil }
func (r *fakeRepository) Close() error                   { return nil }

// ----- accounts -----

type fakeAccountRepo struct{ r *fakeRepository }

func (f *fakeAccountRepo) Create(ctx context.Context, tx *gorm.DB, account *models.Account) error {
	for _, a := range f.r.accounts {
		if a.Email == account.Email {
			return repositories.ErrDuplicateEmail
		}
		if a.Username == account.Username {
			return repositories.ErrDuplicateUsername
		}
	}
	account.ID = f.r.allocID()
	account.CreatedAt = time.Now()
	f.r.accounts[account.ID] = account
	return nil
}

func (f *fakeAccountRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Account, error) {
	if a, ok := f.r.accounts[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAccountRepo) GetActiveByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Account, error) {
	if a, ok := f.r.accounts[id]; ok && a.IsActive {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAccountRepo) GetActiveByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.Account, error) {
	for _, a := range f.r.accounts {
		if a.IsActive && a.Email == email {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAccountRepo) Update(ctx context.Context, tx *gorm.DB, account *models.Account) error {
	if _, ok := f.r.accounts[account.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.r.accounts[account.ID] = account
	return nil
}

func (f *fakeAccountRepo) SoftDelete(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	a, ok := f.r.accounts[id]
	if !ok || !a.IsActive {
		return false, nil
	}
	a.IsActive = false
	return true, nil
}

func (f *fakeAccountRepo) ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	if f.r.skipAccountExistChecks {
		return false, nil
	}
	for _, a := range f.r.accounts {
		if a.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAccountRepo) ExistsByUsername(ctx context.Context, tx *gorm.DB, username string) (bool, error) {
	if f.r.skipAccountExistChecks {
		return false, nil
	}
	for _, a := range f.r.accounts {
		if a.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAccountRepo) GetRespondentsBySurvey(ctx context.Context, tx *gorm.DB, surveyID uint, surveyActive, accountActive bool, limit, offset int) ([]*models.Account, int64, error) {
	if s, ok := f.r.surveys[surveyID]; !ok || s.IsActive != surveyActive {
		return nil, 0, nil
	}

	seen := make(map[uint]bool)
	var out []*models.Account
	for _, res := range f.r.results {
		if res.SurveyID != surveyID || seen[res.AccountID] {
			continue
		}
		seen[res.AccountID] = true
		if a, ok := f.r.accounts[res.AccountID]; ok && a.IsActive == accountActive {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	out = paginate(out, limit, offset)
	return out, total, nil
}

// ----- roles -----

type fakeRoleRepo struct{ r *fakeRepository }

func (f *fakeRoleRepo) Create(ctx context.Context, tx *gorm.DB, role *models.Role) error {
	role.ID = f.r.allocID()
	f.r.roles[role.Name] = role
	return nil
}

func (f *fakeRoleRepo) GetByName(ctx context.Context, tx *gorm.DB, name models.RoleName) (*models.Role, error) {
	if role, ok := f.r.roles[name]; ok {
		return role, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRoleRepo) ExistsByName(ctx context.Context, tx *gorm.DB, name models.RoleName) (bool, error) {
	_, ok := f.r.roles[name]
	return ok, nil
}

func (f *fakeRoleRepo) List(ctx context.Context, tx *gorm.DB) ([]*models.Role, error) {
	out := make([]*models.Role, 0, len(f.r.roles))
	for _, role := range f.r.roles {
		out = append(out, role)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ----- categories -----

type fakeCategoryRepo struct{ r *fakeRepository }

func (f *fakeCategoryRepo) Create(ctx context.Context, tx *gorm.DB, category *models.Category) error {
	category.ID = f.r.allocID()
	f.r.categories[category.ID] = category
	return nil
}

func (f *fakeCategoryRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Category, error) {
	if c, ok := f.r.categories[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCategoryRepo) GetActiveByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Category, error) {
	if c, ok := f.r.categories[id]; ok && c.IsActive {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCategoryRepo) Update(ctx context.Context, tx *gorm.DB, category *models.Category) error {
	if _, ok := f.r.categories[category.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.r.categories[category.ID] = category
	return nil
}

func (f *fakeCategoryRepo) SoftDelete(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	c, ok := f.r.categories[id]
	if !ok || !c.IsActive {
		return false, nil
	}
	c.IsActive = false
	return true, nil
}

func (f *fakeCategoryRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.CategoryFilters) ([]*models.Category, int64, error) {
	var out []*models.Category
	for _, c := range f.r.categories {
		if filters.IsActive != nil && c.IsActive != *filters.IsActive {
			continue
		}
		if filters.AccountID != nil && c.AccountID != *filters.AccountID {
			continue
		}
		if filters.Title != nil && !strings.Contains(strings.ToLower(c.Title), strings.ToLower(*filters.Title)) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	out = paginate(out, filters.Limit, filters.Offset)
	return out, total, nil
}

// ----- surveys -----

type fakeSurveyRepo struct{ r *fakeRepository }

func (f *fakeSurveyRepo) Create(ctx context.Context, tx *gorm.DB, survey *models.Survey) error {
	survey.ID = f.r.allocID()
	f.r.surveys[survey.ID] = survey
	return nil
}

func (f *fakeSurveyRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Survey, error) {
	if s, ok := f.r.surveys[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSurveyRepo) GetActiveByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Survey, error) {
	if s, ok := f.r.surveys[id]; ok && s.IsActive {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSurveyRepo) Update(ctx context.Context, tx *gorm.DB, survey *models.Survey) error {
	if _, ok := f.r.surveys[survey.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.r.surveys[survey.ID] = survey
	return nil
}

func (f *fakeSurveyRepo) SoftDelete(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	s, ok := f.r.surveys[id]
	if !ok || !s.IsActive {
		return false, nil
	}
	s.IsActive = false
	return true, nil
}

func (f *fakeSurveyRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.SurveyFilters) ([]*models.Survey, int64, error) {
	var out []*models.Survey
	for _, s := range f.r.surveys {
		if filters.IsActive != nil && s.IsActive != *filters.IsActive {
			continue
		}
		if filters.CategoryID != nil && (s.CategoryID == nil || *s.CategoryID != *filters.CategoryID) {
			continue
		}
		if filters.Status != nil && s.Status != *filters.Status {
			continue
		}
		if filters.HasRestrictedAccess != nil && s.HasRestrictedAccess != *filters.HasRestrictedAccess {
			continue
		}
		if filters.AccountID != nil && s.AccountID != *filters.AccountID {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	out = paginate(out, filters.Limit, filters.Offset)
	return out, total, nil
}

// ----- questions -----

type fakeQuestionRepo struct{ r *fakeRepository }

func (f *fakeQuestionRepo) Create(ctx context.Context, tx *gorm.DB, question *models.Question) error {
	question.ID = f.r.allocID()
	f.r.questions[question.ID] = question
	return nil
}

func (f *fakeQuestionRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Question, error) {
	if q, ok := f.r.questions[id]; ok {
		return q, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeQuestionRepo) Update(ctx context.Context, tx *gorm.DB, question *models.Question) error {
	if _, ok := f.r.questions[question.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.r.questions[question.ID] = question
	return nil
}

func (f *fakeQuestionRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	if _, ok := f.r.questions[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.r.questions, id)
	return nil
}

func (f *fakeQuestionRepo) ListBySurvey(ctx context.Context, tx *gorm.DB, surveyID uint, limit, offset int) ([]*models.Question, int64, error) {
	var out []*models.Question
	for _, q := range f.r.questions {
		if q.SurveyID == surveyID {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	out = paginate(out, limit, offset)
	return out, total, nil
}

func (f *fakeQuestionRepo) CountBySurvey(ctx context.Context, tx *gorm.DB, surveyID uint) (int64, error) {
	var n int64
	for _, q := range f.r.questions {
		if q.SurveyID == surveyID {
			n++
		}
	}
	return n, nil
}

// ----- results -----

type fakeResultRepo struct{ r *fakeRepository }

func (f *fakeResultRepo) Create(ctx context.Context, tx *gorm.DB, result *models.Result) error {
	result.ID = f.r.allocID()
	f.r.results[result.ID] = result
	return nil
}

func (f *fakeResultRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Result, error) {
	if res, ok := f.r.results[id]; ok {
		return res, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeResultRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.ResultFilters) ([]*models.Result, int64, error) {
	var out []*models.Result
	for _, res := range f.r.results {
		if filters.SurveyID != nil && res.SurveyID != *filters.SurveyID {
			continue
		}
		if filters.AccountID != nil && res.AccountID != *filters.AccountID {
			continue
		}
		out = append(out, res)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	out = paginate(out, filters.Limit, filters.Offset)
	return out, total, nil
}

// ----- answers -----

type fakeAnswerRepo struct{ r *fakeRepository }

func (f *fakeAnswerRepo) Create(ctx context.Context, tx *gorm.DB, answer *models.Answer) error {
	answer.ID = f.r.allocID()
	f.r.answers[answer.ID] = answer
	return nil
}

func (f *fakeAnswerRepo) ListByResult(ctx context.Context, tx *gorm.DB, resultID uint, limit, offset int) ([]*models.Answer, int64, error) {
	var out []*models.Answer
	for _, a := range f.r.answers {
		if a.ResultID == resultID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	out = paginate(out, limit, offset)
	return out, total, nil
}

// ----- refresh tokens -----

type fakeRefreshTokenRepo struct{ r *fakeRepository }

func (f *fakeRefreshTokenRepo) Create(ctx context.Context, tx *gorm.DB, token *models.RefreshToken) error {
	token.ID = f.r.allocID()
	f.r.refreshTokens[token.Token] = token
	return nil
}

func (f *fakeRefreshTokenRepo) GetByToken(ctx context.Context, tx *gorm.DB, token string) (*models.RefreshToken, error) {
	if rt, ok := f.r.refreshTokens[token]; ok {
		return rt, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRefreshTokenRepo) GetByAccount(ctx context.Context, tx *gorm.DB, accountID uint) (*models.RefreshToken, error) {
	for _, rt := range f.r.refreshTokens {
		if rt.AccountID == accountID {
			return rt, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRefreshTokenRepo) DeleteIfExpired(ctx context.Context, tx *gorm.DB, token string) (bool, error) {
	rt, ok := f.r.refreshTokens[token]
	if !ok || rt.ExpiresAt.After(time.Now()) {
		return false, nil
	}
	delete(f.r.refreshTokens, token)
	return true, nil
}

func (f *fakeRefreshTokenRepo) Delete(ctx context.Context, tx *gorm.DB, token string) error {
	delete(f.r.refreshTokens, token)
	return nil
}

func paginate[T any](in []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(in) {
			return nil
		}
		in = in[offset:]
	}
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}
