package pipeline

import (
	"sync"
	"time"

	"github.com/dgallion1/docsift/internal/rank"
)

// JobStatus represents the state of a ranking job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusExtracting JobStatus = "extracting"
	StatusScoring    JobStatus = "scoring"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// Job tracks the state of one collection ranking run.
type Job struct {
	mu sync.Mutex

	ID      string    `json:"job_id"`
	Persona string    `json:"persona"`
	Task    string    `json:"task"`
	Status  JobStatus `json:"status"`
	Phase   string    `json:"phase"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	files  []NamedFile
	result *rank.CollectionResult
	errors []string
}

// Progress tracks processing progress.
type Progress struct {
	TotalDocuments int      `json:"total_documents"`
	Done           int      `json:"done"`
	Phase          string   `json:"phase,omitempty"`
	Errors         []string `json:"errors"`
}

// NewJob builds a queued job over the given files.
func NewJob(persona, task string, files []NamedFile) *Job {
	now := time.Now()
	return &Job{
		ID:        generateULID(),
		Persona:   persona,
		Task:      task,
		Status:    StatusQueued,
		Phase:     "queued",
		Progress:  Progress{TotalDocuments: len(files)},
		CreatedAt: now,
		UpdatedAt: now,
		files:     files,
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// SetProgress records phase progress.
func (j *Job) SetProgress(phase string, done, total int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.Phase = phase
	j.Progress.Done = done
	j.Progress.TotalDocuments = total
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// Files returns the job's input documents.
func (j *Job) Files() []NamedFile {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.files
}

// SetResult stores the finished collection result.
func (j *Job) SetResult(r *rank.CollectionResult) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = r
}

// Result returns the finished collection result, or nil.
func (j *Job) Result() *rank.CollectionResult {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result
}

// JobSnapshot is a read-only, JSON-safe copy of job state. Handlers
// serialize snapshots, never the live Job a worker is mutating.
type JobSnapshot struct {
	ID        string    `json:"job_id"`
	Persona   string    `json:"persona"`
	Task      string    `json:"task"`
	Status    JobStatus `json:"status"`
	Phase     string    `json:"phase"`
	Progress  Progress  `json:"progress"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	return JobSnapshot{
		ID:      j.ID,
		Persona: j.Persona,
		Task:    j.Task,
		Status:  j.Status,
		Phase:   j.Phase,
		Progress: Progress{
			TotalDocuments: j.Progress.TotalDocuments,
			Done:           j.Progress.Done,
			Phase:          j.Progress.Phase,
			Errors:         errs,
		},
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}
