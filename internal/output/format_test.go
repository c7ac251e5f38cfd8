package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/tick/internal/core/task"
)

var sample = task.List{
	{ID: "a", Title: "Review report"},
	{ID: "b", Title: "Write report", Completed: true},
	{ID: "c", Title: "Ship it"},
}

func TestRow(t *testing.T) {
	assert.Equal(t, "   1  [ ] Review report", Row(1, sample[0]))
	assert.Equal(t, "  12  [x] Write report", Row(12, sample[1]))
}

func TestWriteView(t *testing.T) {
	tests := []struct {
		name    string
		list    task.List
		filter  task.Filter
		pattern string
		want    string
	}{
		{
			name:   "all",
			list:   sample,
			filter: task.FilterAll,
			want: "   1  [ ] Review report\n" +
				"   2  [x] Write report\n" +
				"   3  [ ] Ship it\n" +
				"\n2 remaining\n",
		},
		{
			name:   "active keeps full-list positions",
			list:   sample,
			filter: task.FilterActive,
			want: "   1  [ ] Review report\n" +
				"   3  [ ] Ship it\n" +
				"\n2 remaining\n",
		},
		{
			name:    "no matches",
			list:    sample,
			filter:  task.FilterAll,
			pattern: "nothing",
			want:    "No tasks match this filter\n\n2 remaining\n",
		},
		{
			name:   "empty list",
			list:   task.List{},
			filter: task.FilterAll,
			want:   "No todos yet\nAdd your first task above.\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := task.BuildView(tt.list, tt.filter, tt.pattern)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, WriteView(&buf, tt.list, v))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}
