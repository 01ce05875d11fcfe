package teacher

import (
	"context"
	"errors"
	"net/mail"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"

	"github.com/campushq/eventsync/core"
	"github.com/campushq/eventsync/core/user"
)

var (
	// errors
	ErrNotFound    = errors.New("teacher not found")
	ErrEmailExists = errors.New("a teacher with this email already exists")
)

type (
	Repository interface {
		CheckEmailUniqueness(ctx context.Context, email string) error
		CreateTeacher(ctx context.Context, t Teacher) (Teacher, error)
		QueryAllTeachers(ctx context.Context) ([]Teacher, error)
		GetTeacherByID(ctx context.Context, id string) (Teacher, error)
		CountTeachers(ctx context.Context) (int, error)
		DeleteTeacher(ctx context.Context, id string) error
	}

	Service struct {
		repo    Repository
		usrSvc  user.Service
		mailSvc core.EmailService
		conf    *core.Config
	}
)

func NewService(repo Repository, usrSvc user.Service, mailSvc core.EmailService, conf *core.Config) *Service {
	return &Service{
		repo:    repo,
		usrSvc:  usrSvc,
		mailSvc: mailSvc,
		conf:    conf,
	}
}

// CheckEmailUniqueness rejects emails already taken by a teacher record or
// by any login account.
func (svc *Service) CheckEmailUniqueness(ctx context.Context, email string) error {
	if err := svc.repo.CheckEmailUniqueness(ctx, email); err != nil {
		if err == ErrEmailExists {
			return core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return err
	}
	return svc.usrSvc.CheckEmailUniqueness(ctx, email)
}

// Provision creates a teacher record plus a login account with generated
// credentials and mails the credentials to the teacher. A failed email
// does not fail the provisioning; the message is retried by hand from the
// admin side.
func (svc *Service) Provision(ctx context.Context, nt NewTeacher, adminID string) (Teacher, error) {
	count, err := svc.repo.CountTeachers(ctx)
	if err != nil {
		return Teacher{}, pkgerrors.Wrap(err, "counting teachers")
	}

	pwd, err := generatePassword()
	if err != nil {
		return Teacher{}, pkgerrors.Wrap(err, "generating password")
	}

	t := Teacher{
		ID:         uuid.New().String(),
		Name:       nt.Name,
		Email:      nt.Email,
		Department: nt.Department,
		Subject:    nt.Subject,
		Phone:      nt.Phone,
		TeacherID:  formatTeacherID(count + 1),
		IsActive:   true,
		CreatedBy:  adminID,
		CreatedAt:  time.Now().UTC(),
	}
	t, err = svc.repo.CreateTeacher(ctx, t)
	if err != nil {
		return Teacher{}, err
	}

	// the login account shares the teacher record's primary key
	usr := user.User{
		ID:         t.ID,
		Name:       t.Name,
		Email:      t.Email,
		Department: t.Department,
		Role:       user.RoleTeacher,
	}
	if _, err = svc.usrSvc.Create(ctx, usr, pwd); err != nil {
		// roll the teacher record back so provisioning stays all-or-nothing
		_ = svc.repo.DeleteTeacher(ctx, t.ID)
		return Teacher{}, pkgerrors.Wrap(err, "creating teacher login")
	}

	svc.sendCredentialsMail(t, Credentials{
		TeacherID: t.TeacherID,
		Email:     t.Email,
		Password:  pwd,
		LoginURL:  svc.conf.FrontendBaseURL + "/login",
	})
	return t, nil
}

func (svc *Service) QueryAll(ctx context.Context) ([]Teacher, error) {
	return svc.repo.QueryAllTeachers(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Teacher, error) {
	return svc.repo.GetTeacherByID(ctx, id)
}

// Delete removes the teacher record and its login account.
func (svc *Service) Delete(ctx context.Context, id string) error {
	if err := svc.repo.DeleteTeacher(ctx, id); err != nil {
		return err
	}
	if err := svc.usrSvc.Delete(ctx, id); err != nil && err != user.ErrNotFound {
		return err
	}
	return nil
}

func (svc *Service) sendCredentialsMail(t Teacher, creds Credentials) {
	msg := &core.EmailMessage{
		To:           []mail.Address{{Name: t.Name, Address: t.Email}},
		Subject:      "Your login credentials",
		TemplateName: "teacher-credentials",
		TemplateData: struct {
			Name        string
			Credentials Credentials
		}{Name: t.Name, Credentials: creds},
	}
	svc.mailSvc.SendMessages(msg)
}
