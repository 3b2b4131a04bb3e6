package tracker

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habitflow/habitflow/internal/models"
	"github.com/habitflow/habitflow/internal/storage"
)

func newTestTracker(t *testing.T) (*Tracker, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "habits.json")
	store := storage.NewJSONStore(path)
	return New(store, log.New(io.Discard)), path
}

func TestAddUser_SequentialIDs(t *testing.T) {
	tr, _ := newTestTracker(t)

	ana := tr.AddUser("Ana")
	ben := tr.AddUser("Ben")

	assert.Equal(t, 1, ana.ID)
	assert.Equal(t, 2, ben.ID)
	assert.Len(t, tr.Users(), 2)
}

func TestSelectUser(t *testing.T) {
	tr, _ := newTestTracker(t)
	ana := tr.AddUser("Ana")

	require.NotNil(t, tr.SelectUser(ana.ID))
	assert.Equal(t, ana, tr.CurrentUser())

	assert.Nil(t, tr.SelectUser(99), "unknown id should clear the selection")
	assert.Nil(t, tr.CurrentUser())
}

func TestAddHabit_RequiresCurrentUser(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.AddUser("Ana")

	assert.Nil(t, tr.AddHabit("Read", 3, "Study"), "no selection should be a silent no-op")
	assert.Empty(t, tr.CurrentUserHabits())
}

func TestAddHabit_CategoryFallback(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.SelectUser(tr.AddUser("Ana").ID)

	h := tr.AddHabit("Read", 3, "NotARealCategory")
	require.NotNil(t, h)
	assert.Equal(t, models.DefaultCategory, h.Category)
}

func TestCompleteHabit_IndexResolution(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.SelectUser(tr.AddUser("Ana").ID)
	tr.AddHabit("Read", 3, "Study")

	assert.False(t, tr.CompleteHabit(0))
	assert.False(t, tr.CompleteHabit(2))
	assert.True(t, tr.CompleteHabit(1))
	assert.False(t, tr.CompleteHabit(1), "second mark on the same day should report no change")

	user := tr.CurrentUser()
	assert.Equal(t, 1, user.TotalHabits)
	assert.Equal(t, 1, user.ActiveHabits)
}

func TestDeleteHabit_ResolvesAgainstFilteredView(t *testing.T) {
	tr, _ := newTestTracker(t)
	ana := tr.AddUser("Ana")
	ben := tr.AddUser("Ben")

	tr.SelectUser(ana.ID)
	tr.AddHabit("Read", 3, "Study") // habit id 1
	tr.SelectUser(ben.ID)
	tr.AddHabit("Run", 3, "Fitness")  // habit id 2
	tr.AddHabit("Save", 1, "Finance") // habit id 3

	// Ben's 1-based index 1 is the global habit id 2.
	tr.SelectUser(ben.ID)
	require.True(t, tr.DeleteHabit(1))

	benHabits := tr.CurrentUserHabits()
	require.Len(t, benHabits, 1)
	assert.Equal(t, "Save", benHabits[0].Name)

	// Ana's habit and the id sequence are untouched.
	tr.SelectUser(ana.ID)
	require.Len(t, tr.CurrentUserHabits(), 1)
	next := tr.AddHabit("Sketch", 2, "Hobby")
	assert.Equal(t, 4, next.ID)
}

func TestDeleteHabit_OutOfRange(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.SelectUser(tr.AddUser("Ana").ID)
	tr.AddHabit("Read", 3, "Study")

	assert.False(t, tr.DeleteHabit(0))
	assert.False(t, tr.DeleteHabit(2))
	assert.Len(t, tr.CurrentUserHabits(), 1)
}

func TestMutationsPersistImmediately(t *testing.T) {
	tr, path := newTestTracker(t)
	tr.SelectUser(tr.AddUser("Ana").ID)
	tr.AddHabit("Read", 5, "Study")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"Read"`), "habit should be on disk after the mutation")

	// A fresh tracker over the same file sees identical state.
	tr2 := New(storage.NewJSONStore(path), log.New(io.Discard))
	require.NotNil(t, tr2.SelectUser(1))
	habits := tr2.CurrentUserHabits()
	require.Len(t, habits, 1)
	assert.Equal(t, "Read", habits[0].Name)
	assert.Equal(t, 5, habits[0].TargetFrequency)
}

func TestScenario_AnaReadsFiveTimes(t *testing.T) {
	tr, _ := newTestTracker(t)
	ana := tr.AddUser("Ana")
	require.Equal(t, 1, ana.ID)
	tr.SelectUser(ana.ID)

	h := tr.AddHabit("Read", 5, "Study")
	require.NotNil(t, h)
	assert.Equal(t, models.CategoryStudy, h.Category)

	require.True(t, tr.CompleteHabit(1))
	assert.Len(t, h.ThisWeekCompletions(), 1)
	pct, err := h.ProgressPercentage()
	require.NoError(t, err)
	assert.Equal(t, 20, pct)
	assert.Equal(t, models.StatusActive, h.GetStatus())
}

func TestFilteredCurrentHabits(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.SelectUser(tr.AddUser("Ana").ID)

	tr.AddHabit("Read", 1, "Study")
	tr.AddHabit("Run", 5, "Fitness")
	require.True(t, tr.CompleteHabit(1)) // Read hits its weekly target

	assert.Len(t, tr.FilteredCurrentHabits(FilterAll), 2)

	completed := tr.FilteredCurrentHabits(FilterCompleted)
	require.Len(t, completed, 1)
	assert.Equal(t, "Read", completed[0].Name)

	active := tr.FilteredCurrentHabits(FilterActive)
	require.Len(t, active, 1)
	assert.Equal(t, "Run", active[0].Name)
}

func TestIncompleteHabitNames(t *testing.T) {
	tr, _ := newTestTracker(t)

	assert.Empty(t, tr.IncompleteHabitNames(), "no selection means nothing to remind")

	tr.SelectUser(tr.AddUser("Ana").ID)
	tr.AddHabit("Read", 1, "Study")
	tr.AddHabit("Run", 5, "Fitness")
	tr.CompleteHabit(1)

	assert.Equal(t, []string{"Run"}, tr.IncompleteHabitNames())
}

func TestSeedDemoData(t *testing.T) {
	tr, _ := newTestTracker(t)

	assert.False(t, tr.SeedDemoData(), "needs a current user")

	tr.SelectUser(tr.AddUser("Ana").ID)
	assert.True(t, tr.SeedDemoData())
	assert.Len(t, tr.CurrentUserHabits(), 3)

	assert.False(t, tr.SeedDemoData(), "existing habits block the seed")
	assert.Len(t, tr.CurrentUserHabits(), 3)
}

func TestClearAllData(t *testing.T) {
	tr, path := newTestTracker(t)
	tr.SelectUser(tr.AddUser("Ana").ID)
	tr.AddHabit("Read", 3, "Study")

	tr.ClearAllData()

	assert.Empty(t, tr.Users())
	assert.Nil(t, tr.CurrentUser())

	// Counters restart at 1 and the wipe is persisted.
	tr2 := New(storage.NewJSONStore(path), log.New(io.Discard))
	assert.Empty(t, tr2.Users())
	assert.Equal(t, 1, tr2.AddUser("Ben").ID)
}
