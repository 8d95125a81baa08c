package systems

import (
	"errors"
	"fmt"
	"sync"

	"github.com/spaghettifunk/blitz/engine/containers"
	"github.com/spaghettifunk/blitz/engine/core"
	"github.com/spaghettifunk/blitz/engine/renderer/metadata"
)

// JobSystem runs job entry points on a pool of workers. Submitted jobs wait
// in an unbounded queue, so Submit never blocks the main loop. Results wait
// in a bounded queue until the main loop calls Update, which is the only
// place completion and failure callbacks run.
type JobSystem struct {
	numWorkers int
	wg         sync.WaitGroup

	mutex    sync.Mutex
	cond     *sync.Cond
	jobQueue []metadata.JobTask
	results  *containers.RingQueue[metadata.JobResultEntry]
	inFlight int
	closed   bool
}

var ErrNoWorkers = fmt.Errorf("attempting to create worker pool with less than 1 worker")
var ErrNegativeChannelSize = fmt.Errorf("attempting to create worker pool with a negative channel size")
var ErrJobSystemClosed = errors.New("job system is shut down")
var ErrNoEntryPoint = errors.New("job has no entry point")

func NewJobSystem(numWorkers int, channelSize int) (*JobSystem, error) {
	if numWorkers <= 0 {
		return nil, ErrNoWorkers
	}
	if channelSize < 0 {
		return nil, ErrNegativeChannelSize
	}

	js := &JobSystem{
		numWorkers: numWorkers,
		jobQueue:   make([]metadata.JobTask, 0, channelSize),
		results:    containers.NewRingQueue[metadata.JobResultEntry](metadata.MAX_JOB_RESULTS),
	}
	js.cond = sync.NewCond(&js.mutex)

	js.start()

	return js, nil
}

func (js *JobSystem) start() {
	for i := 0; i < js.numWorkers; i++ {
		js.wg.Add(1)
		go func() {
			defer js.wg.Done()
			for {
				job, ok := js.next()
				if !ok {
					return
				}
				result, err := job.EntryPoint()
				if err != nil {
					core.LogError("job '%s' failed: %s", job.Name, err)
				}
				js.store(metadata.JobResultEntry{
					Name:       job.Name,
					Result:     result,
					Err:        err,
					OnComplete: job.OnComplete,
					OnFailure:  job.OnFailure,
				})
			}
		}()
	}
}

// next blocks until a job is queued. It reports false once the system is shut down.
func (js *JobSystem) next() (metadata.JobTask, bool) {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	for len(js.jobQueue) == 0 && !js.closed {
		js.cond.Wait()
	}
	if js.closed {
		return metadata.JobTask{}, false
	}
	job := js.jobQueue[0]
	js.jobQueue[0] = metadata.JobTask{}
	js.jobQueue = js.jobQueue[1:]
	return job, true
}

// store queues a finished job, waiting for room when the queue is full.
func (js *JobSystem) store(entry metadata.JobResultEntry) {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	for js.results.IsFull() && !js.closed {
		js.cond.Wait()
	}
	if !js.closed {
		// cannot fail, the loop above waited for room
		_ = js.results.Enqueue(entry)
	}
	js.inFlight--
	js.cond.Broadcast()
}

/**
 * @brief Shuts the job system down. Jobs not yet started and results not yet
 * collected by Update are dropped.
 */
func (js *JobSystem) Shutdown() error {
	js.mutex.Lock()
	if js.closed {
		js.mutex.Unlock()
		return nil
	}
	js.closed = true
	js.inFlight -= len(js.jobQueue)
	js.jobQueue = nil
	js.cond.Broadcast()
	js.mutex.Unlock()

	js.wg.Wait()
	return nil
}

/**
 * @brief Updates the job system. Should happen once an update cycle.
 * Runs the callbacks of every job finished since the previous call, in
 * completion order, and returns how many ran.
 */
func (js *JobSystem) Update() int {
	js.mutex.Lock()
	entries := make([]metadata.JobResultEntry, 0, js.results.Len())
	for !js.results.IsEmpty() {
		entry, err := js.results.Dequeue()
		if err != nil {
			break
		}
		entries = append(entries, entry)
	}
	js.cond.Broadcast()
	js.mutex.Unlock()

	for _, entry := range entries {
		if entry.Err != nil {
			if entry.OnFailure != nil {
				entry.OnFailure(entry.Err)
			}
			continue
		}
		if entry.OnComplete != nil {
			entry.OnComplete(entry.Result)
		}
	}
	return len(entries)
}

/**
 * @brief Runs Update until no job is running or waiting. Used by headless
 * rendering, where nothing else drives the loop. Callbacks may submit more
 * jobs, those are waited for too.
 */
func (js *JobSystem) Wait() {
	for {
		js.Update()

		js.mutex.Lock()
		for js.inFlight > 0 && js.results.IsEmpty() && !js.closed {
			js.cond.Wait()
		}
		done := (js.inFlight == 0 || js.closed) && js.results.IsEmpty()
		js.mutex.Unlock()

		if done {
			return
		}
	}
}

// Pending is the number of submitted jobs whose callbacks have not run yet.
func (js *JobSystem) Pending() int {
	js.mutex.Lock()
	defer js.mutex.Unlock()
	return js.inFlight + js.results.Len()
}

/**
 * @brief Submits the provided job to be queued for execution.
 * @param jt The description of the job to be executed.
 */
func (js *JobSystem) Submit(jt metadata.JobTask) error {
	if jt.EntryPoint == nil {
		return ErrNoEntryPoint
	}
	js.mutex.Lock()
	defer js.mutex.Unlock()
	if js.closed {
		return ErrJobSystemClosed
	}
	js.jobQueue = append(js.jobQueue, jt)
	js.inFlight++
	js.cond.Broadcast()
	return nil
}
