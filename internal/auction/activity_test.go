package auction

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActivityLog(t *testing.T) {
	l := NewActivityLog(3)
	assert.Empty(t, l.Entries())

	for i := 1; i <= 5; i++ {
		l.Append(ActivityEntry{ID: fmt.Sprint(i)})
	}
	assert.Equal(t, 3, l.Len())

	var ids []string
	for _, e := range l.Entries() {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"5", "4", "3"}, ids)

	l.Reset()
	assert.Equal(t, 0, l.Len())
	l.Append(ActivityEntry{ID: "6"})
	assert.Equal(t, "6", l.Entries()[0].ID)
}

func TestParseGrade(t *testing.T) {
	cases := map[string]Grade{
		"A": GradeA, " b ": GradeB, "c": GradeC,
		"0": GradeNone, "": GradeNone, "none": GradeNone, "AA": GradeNone,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseGrade(in), "input %q", in)
	}
}

func TestFilterMatches(t *testing.T) {
	p := Player{Cricket: GradeB, TT: GradeA}
	assert.True(t, Filter{}.Matches(p))
	assert.True(t, Filter{Grade: GradeA}.Matches(p))
	assert.False(t, Filter{Grade: GradeC}.Matches(p))
	assert.True(t, Filter{Sport: SportCricket}.Matches(p))
	assert.False(t, Filter{Sport: SportBadminton}.Matches(p))
	assert.False(t, Filter{Sport: SportCricket, Grade: GradeA}.Matches(p))
	assert.Equal(t, "TT, grade A", Filter{Sport: SportTT, Grade: GradeA}.String())
}
