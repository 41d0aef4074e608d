package service

import (
	"context"
	"io"
	"log/slog"
	"os"

	"hrms-portal/internal/event"
	"hrms-portal/internal/model"
	"hrms-portal/internal/storage"
	"hrms-portal/pkg/apierror"
)

// Upload is a file received with a multipart request.
type Upload struct {
	Filename string
	Body     io.Reader
}

// PhotoStore is implemented by storage.PhotoStore.
type PhotoStore interface {
	Save(employeeID, filename string, r io.Reader) (storage.Photo, error)
	OpenThumbnail(employeeID string) (*os.File, os.FileInfo, error)
	Remove(employeeID string) error
}

// EmployeeService adds the photo to the plain employee record flow.
type EmployeeService struct {
	records *RecordService[model.Employee]
	photos  PhotoStore
	bus     event.Bus
	log     *slog.Logger
}

func NewEmployeeService(records *RecordService[model.Employee], photos PhotoStore, bus event.Bus, log *slog.Logger) *EmployeeService {
	if log == nil {
		log = slog.Default()
	}
	return &EmployeeService{records: records, photos: photos, bus: bus, log: log.With("component", "employees")}
}

func PhotoURL(employeeID string) string {
	return "/api/v1/employees/" + employeeID + "/photo"
}

func (s *EmployeeService) List(ctx context.Context) ([]model.Employee, error) {
	return s.records.List(ctx)
}

func (s *EmployeeService) Get(ctx context.Context, id string) (model.Employee, error) {
	return s.records.Get(ctx, id)
}

// Create stores the employee and its photo. The photo is mandatory; when it
// cannot be stored the new record is removed again.
func (s *EmployeeService) Create(ctx context.Context, actor model.AuditActor, emp model.Employee, photo *Upload) (model.Employee, error) {
	if photo == nil || photo.Body == nil {
		return emp, apierror.Invalid("Photo is required")
	}
	emp.PhotoURL = ""

	created, err := s.records.Create(ctx, actor, emp)
	if err != nil {
		return created, err
	}

	stored, err := s.photos.Save(created.ID, photo.Filename, photo.Body)
	if err != nil {
		if delErr := s.records.Delete(context.WithoutCancel(ctx), actor, created.ID); delErr != nil {
			s.log.Error("rollback employee without photo failed", "id", created.ID, "error", delErr)
		}
		return model.Employee{}, err
	}

	created.PhotoURL = PhotoURL(created.ID)
	if err := s.records.Save(ctx, actor, "photo", event.TypeRecordUpdated, created); err != nil {
		return created, err
	}

	if s.bus != nil {
		s.bus.Publish(event.New(event.TypePhotoUploaded, string(model.KindEmployee), created.ID, map[string]any{
			"filename": stored.Filename,
			"size":     stored.Size,
		}, actor.UserID))
	}
	return created, nil
}

// Update keeps the stored photo; the payload cannot change it.
func (s *EmployeeService) Update(ctx context.Context, actor model.AuditActor, id string, emp model.Employee) (model.Employee, error) {
	current, err := s.records.Get(ctx, id)
	if err != nil {
		return emp, err
	}
	emp.PhotoURL = current.PhotoURL
	return s.records.Update(ctx, actor, id, emp)
}

func (s *EmployeeService) Delete(ctx context.Context, actor model.AuditActor, id string) error {
	if err := s.records.Delete(ctx, actor, id); err != nil {
		return err
	}
	if err := s.photos.Remove(id); err != nil {
		s.log.Warn("photo cleanup failed", "id", id, "error", err)
	}
	return nil
}

func (s *EmployeeService) Photo(id string) (*os.File, os.FileInfo, error) {
	return s.photos.OpenThumbnail(id)
}
