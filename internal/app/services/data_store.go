// Package services holds the in-memory record store the CLI commands work
// against.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/yigit/unirecords/internal/app/models"
	"github.com/yigit/unirecords/internal/app/models/dto"
	"github.com/yigit/unirecords/internal/client"
	"github.com/yigit/unirecords/internal/pkg/apperrors"
	"github.com/yigit/unirecords/internal/pkg/cache"
	"github.com/yigit/unirecords/internal/pkg/logger"
	"github.com/yigit/unirecords/internal/pkg/notify"
)

const snapshotKeyPrefix = "snapshot:"

// Snapshot is a point-in-time copy of every collection
type Snapshot struct {
	Students  []models.Student `json:"students"`
	Alumni    []models.Alumni  `json:"alumni"`
	Projects  []models.Project `json:"projects"`
	Advisors  []models.Advisor `json:"advisors"`
	FetchedAt time.Time        `json:"fetched_at"`
}

// DataStore keeps the four record collections in memory, refetching a
// collection after each successful mutation.
type DataStore struct {
	api      *client.Client
	notifier notify.Notifier
	cache    cache.Cache
	ttl      time.Duration
	log      zerolog.Logger

	mu        sync.RWMutex
	owner     string
	students  []models.Student
	alumni    []models.Alumni
	projects  []models.Project
	advisors  []models.Advisor
	fetchedAt time.Time
}

// NewDataStore creates a DataStore. A nil cache disables snapshots.
func NewDataStore(api *client.Client, notifier notify.Notifier, c cache.Cache, ttl time.Duration) *DataStore {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	if c == nil {
		c = cache.Noop{}
	}
	return &DataStore{
		api:      api,
		notifier: notifier,
		cache:    c,
		ttl:      ttl,
		log:      logger.Component("datastore"),
	}
}

// SetOwner scopes snapshots to one signed-in account. An empty owner turns
// snapshot reads and writes off.
func (s *DataStore) SetOwner(owner string) {
	s.mu.Lock()
	s.owner = owner
	s.mu.Unlock()
}

// snapshotKey scopes a snapshot to the API it came from and the account that
// fetched it.
func (s *DataStore) snapshotKey(owner string) string {
	base := ""
	if s.api != nil {
		base = s.api.BaseURL()
	}
	return snapshotKeyPrefix + base + "|" + owner
}

// Students returns a copy of the student collection.
func (s *DataStore) Students() []models.Student {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Student(nil), s.students...)
}

// Alumni returns a copy of the alumni collection.
func (s *DataStore) Alumni() []models.Alumni {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Alumni(nil), s.alumni...)
}

// Projects returns a copy of the project collection.
func (s *DataStore) Projects() []models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Project(nil), s.projects...)
}

// Advisors returns a copy of the advisor collection.
func (s *DataStore) Advisors() []models.Advisor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Advisor(nil), s.advisors...)
}

// Snapshot returns all collections at once.
func (s *DataStore) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Students:  append([]models.Student(nil), s.students...),
		Alumni:    append([]models.Alumni(nil), s.alumni...),
		Projects:  append([]models.Project(nil), s.projects...),
		Advisors:  append([]models.Advisor(nil), s.advisors...),
		FetchedAt: s.fetchedAt,
	}
}

// Clear empties every collection and drops the owner's snapshot.
func (s *DataStore) Clear() {
	s.mu.Lock()
	owner := s.owner
	s.students, s.alumni, s.projects, s.advisors = nil, nil, nil, nil
	s.fetchedAt = time.Time{}
	s.owner = ""
	s.mu.Unlock()

	if owner != "" {
		if err := s.cache.Delete(context.Background(), s.snapshotKey(owner)); err != nil {
			s.log.Debug().Err(err).Msg("Failed to drop snapshot")
		}
	}
}

// RefreshAll fetches the four collections concurrently. A failed fetch keeps
// the previous contents of its collection and is only logged; the joined
// failures are returned for callers that want to report them.
func (s *DataStore) RefreshAll(ctx context.Context) error {
	var (
		g      errgroup.Group
		mu     sync.Mutex
		failed []error
	)
	for _, fetch := range []func(context.Context) error{
		s.fetchStudents, s.fetchAlumni, s.fetchProjects, s.fetchAdvisors,
	} {
		fetch := fetch
		g.Go(func() error {
			if err := fetch(ctx); err != nil {
				mu.Lock()
				failed = append(failed, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if len(failed) < 4 {
		s.mu.Lock()
		s.fetchedAt = time.Now()
		s.mu.Unlock()
		s.saveSnapshot(ctx)
	}
	return errors.Join(failed...)
}

// Load fills the store from a fresh snapshot when allowed and available,
// otherwise from the API. It reports whether the cache was used.
func (s *DataStore) Load(ctx context.Context, useCache bool) (bool, error) {
	if useCache && s.LoadCached(ctx) {
		return true, nil
	}
	return false, s.RefreshAll(ctx)
}

// LoadCached restores the owner's snapshot if one exists within the TTL.
func (s *DataStore) LoadCached(ctx context.Context) bool {
	s.mu.RLock()
	owner := s.owner
	s.mu.RUnlock()
	if owner == "" {
		return false
	}

	raw, err := s.cache.Get(ctx, s.snapshotKey(owner))
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			s.log.Debug().Err(err).Msg("Snapshot read failed")
		}
		return false
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		s.log.Debug().Err(err).Msg("Discarding unreadable snapshot")
		return false
	}

	s.mu.Lock()
	s.students, s.alumni, s.projects, s.advisors = snap.Students, snap.Alumni, snap.Projects, snap.Advisors
	s.fetchedAt = snap.FetchedAt
	s.mu.Unlock()
	return true
}

func (s *DataStore) saveSnapshot(ctx context.Context) {
	s.mu.RLock()
	owner := s.owner
	s.mu.RUnlock()
	if owner == "" || s.ttl <= 0 {
		return
	}

	raw, err := json.Marshal(s.Snapshot())
	if err != nil {
		s.log.Debug().Err(err).Msg("Snapshot encode failed")
		return
	}
	if err := s.cache.Set(ctx, s.snapshotKey(owner), raw, s.ttl); err != nil {
		s.log.Debug().Err(err).Msg("Snapshot write failed")
	}
}

var listAll = dto.ListParams{Limit: client.DefaultListLimit}

func (s *DataStore) fetchStudents(ctx context.Context) error {
	rows, _, err := s.api.Students.List(ctx, listAll)
	if err != nil {
		return s.fetchFailed("students", err)
	}
	s.mu.Lock()
	s.students = rows
	s.mu.Unlock()
	return nil
}

func (s *DataStore) fetchAlumni(ctx context.Context) error {
	rows, _, err := s.api.Alumni.List(ctx, listAll)
	if err != nil {
		return s.fetchFailed("alumni", err)
	}
	s.mu.Lock()
	s.alumni = rows
	s.mu.Unlock()
	return nil
}

func (s *DataStore) fetchProjects(ctx context.Context) error {
	rows, _, err := s.api.Projects.List(ctx, listAll)
	if err != nil {
		return s.fetchFailed("projects", err)
	}
	s.mu.Lock()
	s.projects = rows
	s.mu.Unlock()
	return nil
}

func (s *DataStore) fetchAdvisors(ctx context.Context) error {
	rows, _, err := s.api.Advisors.List(ctx, listAll)
	if err != nil {
		return s.fetchFailed("advisors", err)
	}
	s.mu.Lock()
	s.advisors = rows
	s.mu.Unlock()
	return nil
}

// fetchFailed logs quietly; the user may simply not be signed in yet.
func (s *DataStore) fetchFailed(collection string, err error) error {
	s.log.Debug().Err(err).Str("collection", collection).Msg("Fetch failed")
	return fmt.Errorf("fetch %s: %w", collection, err)
}

// mutate runs call, reports the outcome and refetches the affected
// collections in order.
func (s *DataStore) mutate(ctx context.Context, success, fallback string, call func() error, refetch ...func(context.Context) error) error {
	if err := call(); err != nil {
		notify.Error(s.notifier, apperrors.Message(err, fallback))
		return err
	}
	notify.Success(s.notifier, success)
	for _, fetch := range refetch {
		_ = fetch(ctx)
	}
	s.saveSnapshot(ctx)
	return nil
}

// AddStudent creates a student.
func (s *DataStore) AddStudent(ctx context.Context, st models.Student) error {
	return s.mutate(ctx, msgAddStudent, msgAddStudentFail, func() error {
		_, err := s.api.Students.Create(ctx, st)
		return err
	}, s.fetchStudents)
}

// UpdateStudent replaces the student with the given id.
func (s *DataStore) UpdateStudent(ctx context.Context, id string, st models.Student) error {
	return s.mutate(ctx, msgUpdateStudent, msgUpdateStudentFail, func() error {
		return s.api.Students.Update(ctx, id, st)
	}, s.fetchStudents)
}

// DeleteStudent removes a student.
func (s *DataStore) DeleteStudent(ctx context.Context, id string) error {
	return s.mutate(ctx, msgDeleteStudent, msgDeleteStudentFail, func() error {
		return s.api.Students.Delete(ctx, id)
	}, s.fetchStudents)
}

// GraduateStudents moves students to alumni, then refreshes students and
// alumni in that order.
func (s *DataStore) GraduateStudents(ctx context.Context, ids []string) error {
	return s.mutate(ctx, msgGraduate, msgGraduateFail, func() error {
		_, err := s.api.Students.Graduate(ctx, ids)
		return err
	}, s.fetchStudents, s.fetchAlumni)
}

// UpdateStudentStatus sets one status on many students.
func (s *DataStore) UpdateStudentStatus(ctx context.Context, ids []string, status models.StudentStatus) error {
	return s.mutate(ctx, msgStatus, msgStatusFail, func() error {
		_, err := s.api.Students.BatchUpdateStatus(ctx, ids, status)
		return err
	}, s.fetchStudents)
}

// AddAlumni creates an alumni record.
func (s *DataStore) AddAlumni(ctx context.Context, a models.Alumni) error {
	return s.mutate(ctx, msgAddAlumni, msgAddAlumniFail, func() error {
		_, err := s.api.Alumni.Create(ctx, a)
		return err
	}, s.fetchAlumni)
}

// UpdateAlumni replaces the alumni record with the given id.
func (s *DataStore) UpdateAlumni(ctx context.Context, id string, a models.Alumni) error {
	return s.mutate(ctx, msgUpdateAlumni, msgUpdateAlumniFail, func() error {
		return s.api.Alumni.Update(ctx, id, a)
	}, s.fetchAlumni)
}

// DeleteAlumni removes an alumni record.
func (s *DataStore) DeleteAlumni(ctx context.Context, id string) error {
	return s.mutate(ctx, msgDeleteAlumni, msgDeleteAlumniFail, func() error {
		return s.api.Alumni.Delete(ctx, id)
	}, s.fetchAlumni)
}

// AddProject creates a project.
func (s *DataStore) AddProject(ctx context.Context, p models.Project) error {
	return s.mutate(ctx, msgAddProject, msgAddProjectFail, func() error {
		_, err := s.api.Projects.Create(ctx, p)
		return err
	}, s.fetchProjects)
}

// UpdateProject replaces the project with the given id.
func (s *DataStore) UpdateProject(ctx context.Context, id string, p models.Project) error {
	return s.mutate(ctx, msgUpdateProject, msgUpdateProjectFail, func() error {
		return s.api.Projects.Update(ctx, id, p)
	}, s.fetchProjects)
}

// DeleteProject removes a project.
func (s *DataStore) DeleteProject(ctx context.Context, id string) error {
	return s.mutate(ctx, msgDeleteProject, msgDeleteProjectFail, func() error {
		return s.api.Projects.Delete(ctx, id)
	}, s.fetchProjects)
}

// AddProjectComment posts a comment on a project.
func (s *DataStore) AddProjectComment(ctx context.Context, projectID, authorName, authorRole, message string) error {
	return s.mutate(ctx, msgAddComment, msgAddCommentFail, func() error {
		_, err := s.api.Projects.AddComment(ctx, projectID, authorName, authorRole, message)
		return err
	}, s.fetchProjects)
}

// AddAdvisor creates an advisor.
func (s *DataStore) AddAdvisor(ctx context.Context, a models.Advisor) error {
	return s.mutate(ctx, msgAddAdvisor, msgAddAdvisorFail, func() error {
		_, err := s.api.Advisors.Create(ctx, a)
		return err
	}, s.fetchAdvisors)
}

// UpdateAdvisor replaces the advisor with the given id.
func (s *DataStore) UpdateAdvisor(ctx context.Context, id string, a models.Advisor) error {
	return s.mutate(ctx, msgUpdateAdvisor, msgUpdateAdvisorFail, func() error {
		return s.api.Advisors.Update(ctx, id, a)
	}, s.fetchAdvisors)
}

// DeleteAdvisor removes an advisor.
func (s *DataStore) DeleteAdvisor(ctx context.Context, id string) error {
	return s.mutate(ctx, msgDeleteAdvisor, msgDeleteAdvisorFail, func() error {
		return s.api.Advisors.Delete(ctx, id)
	}, s.fetchAdvisors)
}

// ImportStudents uploads a CSV or XLSX file and refreshes students. Notices
// report imported and skipped counts.
func (s *DataStore) ImportStudents(ctx context.Context, filename string, r io.Reader) (dto.ImportResult, error) {
	res, err := s.api.Import.Students(ctx, filename, r)
	if err != nil {
		notify.Error(s.notifier, apperrors.Message(err, client.ImportFallbackMessage))
		return dto.ImportResult{}, err
	}
	if res.Imported > 0 {
		notify.Success(s.notifier, fmt.Sprintf(msgImportDone, res.Imported))
	}
	if res.Skipped > 0 {
		notify.Warning(s.notifier, fmt.Sprintf(msgImportSkipped, res.Skipped))
	}
	_ = s.fetchStudents(ctx)
	s.saveSnapshot(ctx)
	return res, nil
}
