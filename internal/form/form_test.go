package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinValues(t *testing.T) {
	assert.Equal(t, "a", JoinValues([]string{"a"}))
	assert.Equal(t, "angf|-|ngfb", JoinValues([]string{"a", "b"}))
	assert.Equal(t, "", JoinValues(nil))
}

func TestSplitValues(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SplitValues("angf|-|ngfbngf|-|ngfc"))
	assert.Equal(t, []string{"a"}, SplitValues("a"))
	assert.Empty(t, SplitValues(""))

	// Empty items between delimiters are dropped.
	assert.Equal(t, []string{"a", "b"}, SplitValues("angf|-|ngfngf|-|ngfb"))
}

func TestRoundTrip(t *testing.T) {
	values := []string{"Morning keynote", "Workshop A", "Closing panel"}
	assert.Equal(t, values, SplitValues(JoinValues(values)))
}

func TestValuesMayContainPipes(t *testing.T) {
	values := []string{"a|b", "c-d"}
	assert.Equal(t, values, SplitValues(JoinValues(values)))
}
