package todo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTasks() []Task {
	return []Task{
		{ID: 1, UserID: 42, Title: "Buy milk", Completed: false},
		{ID: 2, UserID: 42, Title: "Walk dog", Completed: true},
		{ID: 3, UserID: 42, Title: "Write report", Completed: false},
		{ID: 4, UserID: 42, Title: "Pay rent", Completed: true},
	}
}

func TestApply(t *testing.T) {
	tasks := sampleTasks()

	tests := []struct {
		name    string
		filter  Filter
		wantIDs []int
	}{
		{name: "all is identity", filter: FilterAll, wantIDs: []int{1, 2, 3, 4}},
		{name: "active keeps open tasks", filter: FilterActive, wantIDs: []int{1, 3}},
		{name: "completed keeps done tasks", filter: FilterCompleted, wantIDs: []int{2, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(tasks, tt.filter)
			ids := make([]int, 0, len(got))
			for _, task := range got {
				ids = append(ids, task.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestApplyAllEqualsInput(t *testing.T) {
	tasks := sampleTasks()
	assert.Equal(t, tasks, Apply(tasks, FilterAll))
}

func TestApplyDoesNotAlias(t *testing.T) {
	tasks := sampleTasks()
	got := Apply(tasks, FilterAll)
	got[0].Title = "changed"
	assert.Equal(t, "Buy milk", tasks[0].Title)
}

func TestApplyEmpty(t *testing.T) {
	for _, f := range Filters() {
		assert.Empty(t, Apply(nil, f), f.String())
	}
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in      string
		want    Filter
		wantErr bool
	}{
		{in: "", want: FilterAll},
		{in: "all", want: FilterAll},
		{in: " Active ", want: FilterActive},
		{in: "COMPLETED", want: FilterCompleted},
		{in: "done", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseFilter(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestFilterStringRoundTrip(t *testing.T) {
	for _, f := range Filters() {
		got, err := ParseFilter(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
}

func TestAllCompletedAndActiveCount(t *testing.T) {
	tasks := sampleTasks()
	assert.False(t, AllCompleted(tasks))
	assert.Equal(t, 2, ActiveCount(tasks))

	for i := range tasks {
		tasks[i].Completed = true
	}
	assert.True(t, AllCompleted(tasks))
	assert.Equal(t, 0, ActiveCount(tasks))
	assert.True(t, AllCompleted(nil))
}

func TestIndex(t *testing.T) {
	tasks := sampleTasks()
	assert.Equal(t, 2, Index(tasks, 3))
	assert.Equal(t, -1, Index(tasks, 99))
}

func TestEntries(t *testing.T) {
	visible := sampleTasks()[:2]
	pending := Task{ID: 7, UserID: 42, Title: "New"}

	entries := Entries(visible, &pending)
	require.Len(t, entries, 3)
	assert.False(t, entries[0].IsPlaceholder())
	assert.False(t, entries[1].IsPlaceholder())
	assert.True(t, entries[2].IsPlaceholder())
	assert.Equal(t, "New", entries[2].Task().Title)
	assert.Zero(t, entries[2].Task().ID)

	assert.Len(t, Entries(visible, nil), 2)
}

func TestPersistedWithZeroIDIsNotPlaceholder(t *testing.T) {
	e := Persisted(Task{ID: 0, Title: "legit"})
	assert.False(t, e.IsPlaceholder())
}
