package domain

// SortIncompleteFirst returns a new slice with incomplete tasks ahead of
// completed ones. Relative order inside each group is preserved.
func SortIncompleteFirst(tasks []*Task) []*Task {
	sorted := make([]*Task, 0, len(tasks))
	var completed []*Task
	for _, task := range tasks {
		if task.IsCompleted {
			completed = append(completed, task)
			continue
		}
		sorted = append(sorted, task)
	}
	return append(sorted, completed...)
}
