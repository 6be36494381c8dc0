package aztbrew

func worker(tasks <-chan Task, results chan<- Result) {
	for t := range tasks {
		results <- t.Run()
	}
}
