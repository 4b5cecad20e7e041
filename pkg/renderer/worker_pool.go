package renderer

import (
	"fmt"
	"runtime"
	"sync"
)

// RowRange is the half-open range of image rows [Start, End)
type RowRange struct {
	Start, End int
}

// Len returns the number of rows in the range
func (r RowRange) Len() int {
	return r.End - r.Start
}

// SplitRows divides height rows into at most numWorkers contiguous chunks of equal size.
// Rows left over by the integer division go to the last chunk.
func SplitRows(height, numWorkers int) []RowRange {
	if height <= 0 {
		return nil
	}
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	numWorkers = min(numWorkers, height)

	chunk := height / numWorkers
	ranges := make([]RowRange, numWorkers)
	for i := range ranges {
		ranges[i] = RowRange{Start: i * chunk, End: (i + 1) * chunk}
	}
	ranges[numWorkers-1].End = height

	return ranges
}

// RowTask represents a block of rows for the worker pool
type RowTask struct {
	Rows   RowRange
	TaskID int
	Image  *Image // Shared output image; each task owns its rows exclusively
}

// RowResult contains the result from rendering a block of rows
type RowResult struct {
	TaskID int
	Stats  RenderStats
	Error  error
}

// WorkerPool manages parallel row rendering
type WorkerPool struct {
	taskQueue   chan RowTask
	resultQueue chan RowResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual row rendering tasks
type Worker struct {
	ID          int
	raytracer   *Raytracer
	taskQueue   chan RowTask
	resultQueue chan RowResult
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// numWorkers <= 0 selects runtime.NumCPU().
func NewWorkerPool(raytracer *Raytracer, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan RowTask, numWorkers),
		resultQueue: make(chan RowResult, numWorkers),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		worker := &Worker{
			ID:          i,
			raytracer:   raytracer,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		}
		wp.workers = append(wp.workers, worker)
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop waits for queued tasks to finish and shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a row task to the worker pool
func (wp *WorkerPool) SubmitTask(task RowTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed row result
func (wp *WorkerPool) GetResult() (RowResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		w.resultQueue <- w.render(task)
	}
}

// render renders one task, turning a panic into an error so the pool keeps draining
func (w *Worker) render(task RowTask) (result RowResult) {
	result.TaskID = task.TaskID
	defer func() {
		if r := recover(); r != nil {
			result.Error = fmt.Errorf("worker %d: panic rendering rows [%d, %d): %v",
				w.ID, task.Rows.Start, task.Rows.End, r)
		}
	}()

	result.Stats = w.raytracer.renderRows(task.Rows, task.Image)
	return result
}
