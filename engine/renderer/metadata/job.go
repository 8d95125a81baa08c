package metadata

/** Entry point of a job, run on a worker goroutine. */
type JobStart func() (interface{}, error)

/** Definition for completion of a job, run on the main loop. */
type JobOnComplete func(interface{})

/** Definition for failure of a job, run on the main loop. */
type JobOnFailure func(error)

/**
 * @brief Describes a job to be run.
 */
type JobTask struct {
	/** @brief Used in log lines. */
	Name string
	/** @brief Invoked on a worker goroutine. Required. */
	EntryPoint JobStart
	/** @brief Invoked on the main loop when the job succeeds. Optional. */
	OnComplete JobOnComplete
	/** @brief Invoked on the main loop when the job fails. Optional. */
	OnFailure JobOnFailure
}

/**
 * @brief The outcome of a finished job waiting for the main loop.
 */
type JobResultEntry struct {
	Name       string
	Result     interface{}
	Err        error
	OnComplete JobOnComplete
	OnFailure  JobOnFailure
}

// The max number of job results that can be stored at once.
const MAX_JOB_RESULTS int = 512
