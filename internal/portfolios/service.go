package portfolios

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"portfolio-views/internal/models"
	"portfolio-views/internal/recorders"
	"portfolio-views/internal/shared/loggers"
	"portfolio-views/internal/shared/metrics"
	"portfolio-views/internal/shared/svcerrors"
	"portfolio-views/internal/shared/ulid"
	"portfolio-views/internal/shared/validators"
	"portfolio-views/internal/stores"

	"github.com/mileusna/useragent"
)

const (
	DefaultMaxFileBytes     = 5 * 1024 * 1024
	DefaultMaxProjectImages = 10
)

type Options struct {
	MaxFileBytes     int64
	MaxProjectImages int
	// IgnoreBots answers crawler requests without counting a view.
	IgnoreBots bool
}

//go:generate mockgen -source=service.go -destination=./mocks/service_mock.go -package=mocks
type PortfolioService interface {
	Create(ctx context.Context, input *CreateInput, files *Files) (*models.Portfolio, error)
	// View returns the portfolio and records one view for it, unless the
	// user agent is a bot and bots are ignored.
	View(ctx context.Context, username string, userAgent string) (*models.Portfolio, error)
	CheckAvailability(ctx context.Context, username string) (*Availability, error)
	Update(ctx context.Context, username string, input *UpdateInput, files *Files) (*models.Portfolio, error)
}

type portfolioService struct {
	store        stores.PortfolioStore
	uploadStore  stores.UploadStore
	viewRecorder recorders.ViewRecorder
	validate     *validators.Validate
	opts         Options
}

func NewPortfolioService(store stores.PortfolioStore, uploadStore stores.UploadStore, viewRecorder recorders.ViewRecorder, opts Options) PortfolioService {
	if opts.MaxFileBytes <= 0 {
		opts.MaxFileBytes = DefaultMaxFileBytes
	}
	if opts.MaxProjectImages <= 0 {
		opts.MaxProjectImages = DefaultMaxProjectImages
	}
	return &portfolioService{
		store:        store,
		uploadStore:  uploadStore,
		viewRecorder: viewRecorder,
		validate:     validators.New(),
		opts:         opts,
	}
}

func (s *portfolioService) Create(ctx context.Context, input *CreateInput, files *Files) (*models.Portfolio, error) {
	portfolio, err := s.create(ctx, input, files)
	if err != nil {
		code := codeInternalPortfolioStoreFailed
		if svcErr, ok := svcerrors.AsServiceError(err); ok {
			code = svcErr.Code
		}
		metricPortfolioCreatedTotal.WithLabelValues(code).Inc()
		return nil, err
	}
	metricPortfolioCreatedTotal.WithLabelValues(metrics.ValueNoError).Inc()
	return portfolio, nil
}

func (s *portfolioService) create(ctx context.Context, input *CreateInput, files *Files) (*models.Portfolio, error) {
	if input == nil {
		return nil, errValidationFailed("empty request body", nil)
	}
	input.normalize()
	if err := s.validateStruct(input); err != nil {
		return nil, err
	}
	if err := s.validateFiles(files); err != nil {
		return nil, err
	}

	saved, err := s.saveFiles(ctx, files, len(input.Projects))
	if err != nil {
		return nil, err
	}

	portfolio := &models.Portfolio{
		ID:              ulid.NewULID(),
		FullName:        input.FullName,
		Role:            input.Role,
		Location:        input.Location,
		Username:        input.Username,
		Bio:             input.Bio,
		PrimaryFocus:    input.PrimaryFocus,
		SecondaryFocus:  input.SecondaryFocus,
		Stack:           input.Stack,
		Tooling:         input.Tooling,
		Projects:        toProjects(input.Projects, saved.projectImageURLs),
		ProfileImageURL: saved.profileImageURL,
		ResumeURL:       saved.resumeURL,
		Github:          input.Github,
		Linkedin:        input.Linkedin,
		Twitter:         input.Twitter,
		Email:           input.Email,
		Views:           0,
	}

	if err := s.store.Create(ctx, portfolio); err != nil {
		if errors.Is(err, stores.ErrPortfolioAlreadyExist) {
			return nil, errUsernameTaken(err)
		}
		return nil, errInternalPortfolioStoreFailed(err)
	}

	loggers.Ctx(ctx).Info().
		Str(loggers.FieldUsername, portfolio.Username).
		Msg("portfolio created")
	return portfolio, nil
}

func (s *portfolioService) View(ctx context.Context, username string, userAgent string) (*models.Portfolio, error) {
	username, err := s.usernameParam(username)
	if err != nil {
		return nil, err
	}

	var portfolio *models.Portfolio
	if bot, ok := s.botName(userAgent); ok {
		metricBotViewsSkippedTotal.WithLabelValues(bot).Inc()
		portfolio, err = s.viewRecorder.Peek(ctx, username)
	} else {
		portfolio, err = s.viewRecorder.RecordView(ctx, username)
	}
	if err != nil {
		if errors.Is(err, stores.ErrPortfolioNotFound) {
			return nil, errPortfolioNotFound(err)
		}
		return nil, errInternalPortfolioStoreFailed(err)
	}
	return portfolio, nil
}

func (s *portfolioService) CheckAvailability(ctx context.Context, username string) (*Availability, error) {
	username, err := s.usernameParam(username)
	if err != nil {
		return nil, err
	}

	exists, err := s.store.Exists(ctx, username)
	if err != nil {
		return nil, errInternalPortfolioStoreFailed(err)
	}
	return &Availability{Available: !exists}, nil
}

func (s *portfolioService) Update(ctx context.Context, username string, input *UpdateInput, files *Files) (*models.Portfolio, error) {
	username, err := s.usernameParam(username)
	if err != nil {
		return nil, err
	}
	if input == nil {
		input = &UpdateInput{}
	}
	input.normalize()

	if input.isEmpty() && files.isEmpty() {
		return nil, errValidationFailed("at least one field must be provided", nil)
	}
	if input.Projects != nil && len(input.Projects) == 0 {
		return nil, errValidationFailed("projects: at least one project is required", nil)
	}
	if err := s.validateStruct(input); err != nil {
		return nil, err
	}
	if files != nil && len(files.ProjectImages) > 0 && input.Projects == nil {
		return nil, errValidationFailed("project images require corresponding project data", nil)
	}
	if err := s.validateFiles(files); err != nil {
		return nil, err
	}

	saved, err := s.saveFiles(ctx, files, len(input.Projects))
	if err != nil {
		return nil, err
	}

	update := &models.PortfolioUpdate{
		FullName:       input.FullName,
		Role:           input.Role,
		Location:       input.Location,
		Username:       input.Username,
		Bio:            input.Bio,
		PrimaryFocus:   input.PrimaryFocus,
		SecondaryFocus: input.SecondaryFocus,
		Stack:          input.Stack,
		Tooling:        input.Tooling,
		Github:         input.Github,
		Linkedin:       input.Linkedin,
		Twitter:        input.Twitter,
		Email:          input.Email,
	}
	if input.Projects != nil {
		update.Projects = toProjects(input.Projects, saved.projectImageURLs)
	}
	if saved.profileImageURL != "" {
		update.ProfileImageURL = &saved.profileImageURL
	}
	if saved.resumeURL != "" {
		update.ResumeURL = &saved.resumeURL
	}

	portfolio, err := s.store.Update(ctx, username, update)
	if err != nil {
		switch {
		case errors.Is(err, stores.ErrPortfolioNotFound):
			return nil, errPortfolioNotFound(err)
		case errors.Is(err, stores.ErrPortfolioAlreadyExist):
			return nil, errUsernameTaken(err)
		default:
			return nil, errInternalPortfolioStoreFailed(err)
		}
	}

	loggers.Ctx(ctx).Info().
		Str(loggers.FieldUsername, portfolio.Username).
		Msg("portfolio updated")
	return portfolio, nil
}

func (s *portfolioService) usernameParam(username string) (string, error) {
	username = models.NormalizeUsername(username)
	if !validators.IsUsername(username) {
		return "", errValidationFailed(fmt.Sprintf(
			"username must be %d-%d characters of letters, numbers, dots, underscores and hyphens",
			validators.UsernameMinLen, validators.UsernameMaxLen), nil)
	}
	return username, nil
}

func (s *portfolioService) botName(userAgent string) (string, bool) {
	if !s.opts.IgnoreBots || userAgent == "" {
		return "", false
	}
	ua := useragent.Parse(userAgent)
	if !ua.Bot {
		return "", false
	}
	name := ua.Name
	if name == "" {
		name = "unknown"
	}
	return name, true
}

func (s *portfolioService) validateStruct(input any) error {
	err := s.validate.Struct(input)
	if err == nil {
		return nil
	}
	var validationErrors validators.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return errValidationFailed("invalid request body", err)
	}
	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatFieldError(e))
	}
	return errValidationFailed(strings.Join(messages, ", "), err)
}

// formatFieldError renders a field error with its json path, e.g. "projects[0].projectUrl must be a valid URL".
func formatFieldError(e validators.FieldError) string {
	field := e.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if e.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at least %s item(s)", field, e.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", field, e.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case validators.TagUsername:
		return fmt.Sprintf("%s may contain letters, numbers, dots, underscores and hyphens (%d-%d characters)",
			field, validators.UsernameMinLen, validators.UsernameMaxLen)
	default:
		return fmt.Sprintf("%s (%s)", field, e.Tag())
	}
}
