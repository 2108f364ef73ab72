package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPosition_OutOfRangePanics(t *testing.T) {
	tests := []struct {
		name string
		x, y int
	}{
		{"x too large", 5, 0},
		{"y too large", 0, 5},
		{"negative x", -1, 2},
		{"negative y", 2, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, func() { NewPosition(tt.x, tt.y) })
		})
	}

	assert.NotPanics(t, func() { NewPosition(4, 4) })
}

func TestPosition_Step(t *testing.T) {
	center := NewPosition(2, 2)
	tests := []struct {
		name   string
		from   Position
		dir    Direction
		want   Position
		wantOK bool
	}{
		{"north from center", center, North, NewPosition(2, 1), true},
		{"south from center", center, South, NewPosition(2, 3), true},
		{"west from center", center, West, NewPosition(1, 2), true},
		{"east from center", center, East, NewPosition(3, 2), true},
		{"north off top edge", NewPosition(3, 0), North, NewPosition(3, 0), false},
		{"south off bottom edge", NewPosition(3, 4), South, NewPosition(3, 4), false},
		{"west off left edge", NewPosition(0, 1), West, NewPosition(0, 1), false},
		{"east off right edge", NewPosition(4, 1), East, NewPosition(4, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.from.Step(tt.dir)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPositions_RowMajorAndRestartable(t *testing.T) {
	var first []Position
	for p := range Positions() {
		first = append(first, p)
	}
	require.Len(t, first, GridSize*GridSize)
	assert.Equal(t, NewPosition(0, 0), first[0])
	assert.Equal(t, NewPosition(1, 0), first[1])
	assert.Equal(t, NewPosition(0, 1), first[GridSize])
	assert.Equal(t, NewPosition(4, 4), first[len(first)-1])

	for i := 1; i < len(first); i++ {
		assert.Equal(t, -1, Compare(first[i-1], first[i]), "positions %v and %v out of order", first[i-1], first[i])
	}

	var second []Position
	for p := range Positions() {
		second = append(second, p)
	}
	assert.Equal(t, first, second)
}

func TestPositions_EarlyBreak(t *testing.T) {
	n := 0
	for range Positions() {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestCompare(t *testing.T) {
	assert.Equal(t, 0, Compare(NewPosition(1, 2), NewPosition(1, 2)))
	assert.Equal(t, -1, Compare(NewPosition(4, 0), NewPosition(0, 1)))
	assert.Equal(t, 1, Compare(NewPosition(3, 3), NewPosition(2, 3)))
}

func TestPosition_JSON(t *testing.T) {
	data, err := json.Marshal(NewPosition(3, 1))
	require.NoError(t, err)
	assert.JSONEq(t, `{"x":3,"y":1}`, string(data))

	var p Position
	require.NoError(t, json.Unmarshal(data, &p))
	assert.Equal(t, NewPosition(3, 1), p)

	err = json.Unmarshal([]byte(`{"x":5,"y":0}`), &p)
	assert.Error(t, err)
}

func TestDirection_Reverse(t *testing.T) {
	assert.Equal(t, South, North.Reverse())
	assert.Equal(t, North, South.Reverse())
	assert.Equal(t, East, West.Reverse())
	assert.Equal(t, West, East.Reverse())

	for d := range Directions() {
		assert.Equal(t, d, d.Reverse().Reverse())
	}
}

func TestDirections_Order(t *testing.T) {
	var got []Direction
	for d := range Directions() {
		got = append(got, d)
	}
	assert.Equal(t, []Direction{North, South, West, East}, got)
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input string
		want  Direction
	}{
		{"north", North},
		{"UP", North},
		{"↑", North},
		{"south", South},
		{"down", South},
		{"left", West},
		{"w", West},
		{"East", East},
		{" right ", East},
		{"→", East},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDirection(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseDirection("diagonal")
	assert.ErrorIs(t, err, ErrInvalidDirection)
}

func TestDirection_TextRoundTrip(t *testing.T) {
	for d := range Directions() {
		text, err := d.MarshalText()
		require.NoError(t, err)

		var back Direction
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, d, back)
	}
}

func TestObject_Symbols(t *testing.T) {
	tests := []struct {
		symbol rune
		want   Object
	}{
		{'.', Ice},
		{'*', Wall},
		{'S', Start},
		{'E', End},
	}

	for _, tt := range tests {
		got, ok := ObjectFromSymbol(tt.symbol)
		require.True(t, ok)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, string(tt.symbol), got.String())
	}

	_, ok := ObjectFromSymbol('?')
	assert.False(t, ok)
	assert.Equal(t, "", Empty.String())

	assert.True(t, Wall.IsObstacle())
	assert.False(t, End.IsObstacle())
	assert.True(t, Start.IsStart())
	assert.True(t, End.IsEnd())
	assert.True(t, Ice.IsIce())
}
