package leveldata

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/automoto/flipside/shared/gamemath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLevel = `# sample
start,50,500,40,50
ground,0,580,4000,20
platform,300,450,120,20

slope,100,480,100,100,100,0
pushable,200,400,40,40
checkpoint,300,400,40,60
goal,900,500,80,80
teleporter,1,2,3,4
`

func TestParseSample(t *testing.T) {
	desc, err := ParseString(sampleLevel)
	require.NoError(t, err)

	assert.True(t, desc.HasStart)
	assert.Equal(t, Point{X: 50, Y: 500}, desc.Start)
	require.NotNil(t, desc.Goal)
	assert.Equal(t, gamemath.Rect{X: 900, Y: 500, W: 80, H: 80}, *desc.Goal)

	require.Len(t, desc.Records, 5)
	assert.Equal(t, TypePlatform, desc.Records[0].Type, "ground loads as a platform")
	assert.Equal(t, TypeSlope, desc.Records[2].Type)
	assert.Equal(t, 100.0, desc.Records[2].LeftOffset)
	assert.Equal(t, 0.0, desc.Records[2].RightOffset)
	assert.Equal(t, 530.0, desc.Records[2].Slope().HeightAt(150))
}

func TestParseLastStartWins(t *testing.T) {
	desc, err := ParseString("start,1,2,40,50\nstart,10,20,40,50\n")
	require.NoError(t, err)
	assert.Equal(t, Point{X: 10, Y: 20}, desc.Start)
	assert.Nil(t, desc.Goal)
}

func TestParseMissingStart(t *testing.T) {
	_, err := ParseString("platform,0,580,400,20\n")
	assert.ErrorIs(t, err, ErrMissingStartPoint)
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name string
		line string
		geom bool
	}{
		{"too few fields", "platform,0,580,400", false},
		{"too many fields", "platform,0,580,400,20,1", false},
		{"slope missing offsets", "slope,0,0,10,10", false},
		{"not a number", "spike,a,580,20,20", false},
		{"nan width", "platform,0,580,NaN,20", false},
		{"infinite x", "spike,Inf,580,20,20", false},
		{"negative infinite y", "platform,0,-Inf,400,20", false},
		{"nan offset", "slope,0,0,10,10,nan,0", false},
		{"zero width", "platform,0,580,0,20", true},
		{"offset outside", "slope,0,0,10,10,11,0", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString("start,0,0,40,50\n\n" + tt.line + "\n")
			require.Error(t, err)
			assert.True(t, IsMalformed(err))

			var rec *MalformedRecordError
			require.True(t, errors.As(err, &rec))
			assert.Equal(t, 3, rec.Line)
			assert.Equal(t, tt.line, rec.Text)
			assert.Equal(t, tt.geom, errors.Is(err, gamemath.ErrInvalidGeometry))
		})
	}
}

func TestParseNamesNonFiniteField(t *testing.T) {
	_, err := ParseString("start,0,0,40,50\nplatform,0,580,+Inf,20\n")
	var rec *MalformedRecordError
	require.True(t, errors.As(err, &rec))
	assert.Equal(t, "field 3 is not finite", rec.Reason)
}

func TestWriteRoundTrip(t *testing.T) {
	desc, err := ParseString(sampleLevel)
	require.NoError(t, err)

	out := desc.String()
	assert.True(t, strings.HasPrefix(out, "start,50,500,40,50\ngoal,900,500,80,80\n"))
	assert.Contains(t, out, "slope,100,480,100,100,100,0\n")

	again, err := ParseString(out)
	require.NoError(t, err)
	assert.Equal(t, desc.Records, again.Records)
	assert.Equal(t, desc.Start, again.Start)
}

func TestCloneIsDeep(t *testing.T) {
	desc, err := ParseString(sampleLevel)
	require.NoError(t, err)

	c := desc.Clone()
	c.Records[0].Rect.X = 999
	c.Goal.X = 1
	assert.Equal(t, 0.0, desc.Records[0].Rect.X)
	assert.Equal(t, 900.0, desc.Goal.X)
}

func TestBounds(t *testing.T) {
	desc, err := ParseString("start,50,500,40,50\nplatform,0,580,400,20\ngoal,900,100,80,80\n")
	require.NoError(t, err)
	assert.Equal(t, gamemath.Rect{X: 0, Y: 100, W: 980, H: 500}, desc.Bounds())
}

const sampleTMX = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="10" height="10" tilewidth="16" tileheight="16" infinite="0" nextlayerid="4" nextobjectid="6">
 <objectgroup id="1" name="PlayerSpawn">
  <object id="1" x="64" y="32"/>
  <object id="2" x="32" y="64"/>
 </objectgroup>
 <objectgroup id="2" name="Objects">
  <object id="3" type="platform" x="0" y="144" width="160" height="16"/>
  <object id="4" type="slope" x="40" y="100" width="40" height="40">
   <properties>
    <property name="leftOffset" type="float" value="40"/>
    <property name="rightOffset" type="float" value="0"/>
   </properties>
  </object>
  <object id="5" type="lamp" x="0" y="0" width="4" height="4"/>
 </objectgroup>
 <objectgroup id="3" name="FinishLine">
  <object id="6" x="140" y="100" width="20" height="44"/>
 </objectgroup>
</map>
`

func TestLoadTMX(t *testing.T) {
	fsys := fstest.MapFS{"levels/cave.tmx": {Data: []byte(sampleTMX)}}

	desc, err := Load(fsys, "levels/cave.tmx")
	require.NoError(t, err)

	assert.Equal(t, "cave", desc.Name)
	assert.Equal(t, Point{X: 32, Y: 64}, desc.Start, "leftmost spawn")
	require.NotNil(t, desc.Goal)
	assert.Equal(t, 140.0, desc.Goal.X)
	require.Len(t, desc.Records, 2)
	assert.Equal(t, TypePlatform, desc.Records[0].Type)
	assert.Equal(t, TypeSlope, desc.Records[1].Type)
	assert.Equal(t, 40.0, desc.Records[1].LeftOffset)
}

func TestListAndLoadFile(t *testing.T) {
	fsys := fstest.MapFS{
		"levels/level2.txt": {Data: []byte("start,0,0,40,50\n")},
		"levels/level1.txt": {Data: []byte("start,5,5,40,50\n")},
		"levels/notes.md":   {Data: []byte("ignored")},
		"levels/cave.tmx":   {Data: []byte(sampleTMX)},
	}

	names, err := ListLevels(fsys, "levels")
	require.NoError(t, err)
	assert.Equal(t, []string{"levels/cave.tmx", "levels/level1.txt", "levels/level2.txt"}, names)

	desc, err := Load(fsys, "levels/level1.txt")
	require.NoError(t, err)
	assert.Equal(t, "level1", desc.Name)
	assert.Equal(t, Point{X: 5, Y: 5}, desc.Start)

	_, err = Load(fsys, "levels/missing.txt")
	assert.Error(t, err)
}
