package fibonacci

// ProgressReporter receives normalized progress values in [0.0, 1.0].
// Implementations must be safe for use from the calculation goroutine;
// reporters are invoked synchronously inside the doubling loop.
type ProgressReporter func(progress float64)

// nopReporter discards progress updates.
func nopReporter(float64) {}

// calcTotalWork returns the total weighted work for a doubling run over
// numBits iterations. Each iteration roughly quadruples in cost because the
// operand size doubles and multiplication cost grows at least linearly with
// it, so iteration i (counting from the most significant bit) is weighted
// 4^i. Reporting raw iteration counts would front-load the progress bar.
func calcTotalWork(numBits int) float64 {
	total := 0.0
	weight := 1.0
	for i := 0; i < numBits; i++ {
		total += weight
		weight *= 4
	}
	return total
}

// reportStepProgress accumulates the weight of one finished iteration and
// invokes the reporter when progress advanced by at least one percent,
// throttling reporter calls on long runs.
func reportStepProgress(reporter ProgressReporter, lastReported *float64, totalWork, workDone, stepWeight float64) float64 {
	workDone += stepWeight
	progress := workDone / totalWork
	if progress-*lastReported >= 0.01 || progress >= 1.0 {
		*lastReported = progress
		reporter(progress)
	}
	return workDone
}
