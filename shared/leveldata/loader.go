package leveldata

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/automoto/flipside/shared/gamemath"
	"github.com/lafriks/go-tiled"
)

// Tiled layer and group names recognised by LoadTMX.
const (
	tmxSolidLayer      = "wg-tiles"
	tmxSpawnGroup      = "PlayerSpawn"
	tmxFinishGroup     = "FinishLine"
	tmxCheckpointGroup = "Checkpoint"
	tmxObjectsGroup    = "Objects"

	tmxSlopeUpRight = "45_up_right"
	tmxSlopeUpLeft  = "45_up_left"
)

// LoadTMX imports a Tiled map. Solid tiles on the wg-tiles layer become
// platforms (or slopes when the tile carries a slope property), the first
// PlayerSpawn object is the start, FinishLine is the goal, and objects in the
// Objects group are typed by their class. It takes an fs.FS so callers can
// pass embed.FS or os.DirFS.
func LoadTMX(fsys fs.FS, tmxPath string) (*Description, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	desc := &Description{Name: strings.TrimSuffix(path.Base(tmxPath), ".tmx")}

	tileW := float64(levelMap.TileWidth)
	tileH := float64(levelMap.TileHeight)
	for _, layer := range levelMap.Layers {
		if layer.Name != tmxSolidLayer {
			continue
		}
		for y := 0; y < levelMap.Height; y++ {
			for x := 0; x < levelMap.Width; x++ {
				tile := layer.Tiles[y*levelMap.Width+x]
				if tile.IsNil() {
					continue
				}

				var slopeType string
				if tilesetTile, err := tile.Tileset.GetTilesetTile(tile.ID); err == nil {
					slopeType = tilesetTile.Properties.GetString("slope")
				}

				rec := Record{
					Type: TypePlatform,
					Rect: gamemath.Rect{X: float64(x) * tileW, Y: float64(y) * tileH, W: tileW, H: tileH},
				}
				switch slopeType {
				case tmxSlopeUpRight:
					rec.Type, rec.LeftOffset, rec.RightOffset = TypeSlope, tileH, 0
				case tmxSlopeUpLeft:
					rec.Type, rec.LeftOffset, rec.RightOffset = TypeSlope, 0, tileH
				}
				desc.Records = append(desc.Records, rec)
			}
		}
		break
	}

	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case tmxSpawnGroup:
			// Leftmost spawn anchors the player.
			objs := append([]*tiled.Object(nil), og.Objects...)
			sort.Slice(objs, func(i, j int) bool { return objs[i].X < objs[j].X })
			if len(objs) > 0 {
				desc.Start = Point{X: objs[0].X, Y: objs[0].Y}
				desc.HasStart = true
			}
		case tmxFinishGroup:
			for _, o := range og.Objects {
				rect, err := gamemath.NewRect(o.X, o.Y, o.Width, o.Height)
				if err != nil {
					return nil, fmt.Errorf("%s: finish line %d: %w", tmxPath, o.ID, err)
				}
				desc.Goal = &rect
			}
		case tmxCheckpointGroup:
			for _, o := range og.Objects {
				rect, err := gamemath.NewRect(o.X, o.Y, o.Width, o.Height)
				if err != nil {
					return nil, fmt.Errorf("%s: checkpoint %d: %w", tmxPath, o.ID, err)
				}
				desc.Records = append(desc.Records, Record{Type: TypeCheckpoint, Rect: rect})
			}
		case tmxObjectsGroup:
			for _, o := range og.Objects {
				rec, ok, err := tmxRecord(o)
				if err != nil {
					return nil, fmt.Errorf("%s: object %d: %w", tmxPath, o.ID, err)
				}
				if ok {
					desc.Records = append(desc.Records, rec)
				}
			}
		}
	}

	if err := desc.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", tmxPath, err)
	}
	return desc, nil
}

func tmxRecord(o *tiled.Object) (Record, bool, error) {
	class := o.Class
	if class == "" {
		class = o.Type //nolint:staticcheck // older TMX files use type=
	}
	typ := RecordType(class)
	switch typ {
	case typeGround:
		typ = TypePlatform
	case TypePlatform, TypePushable, TypeTrampoline, TypeWall3D, TypeVWall,
		TypeSpike, TypeCheckpoint, TypeSlope:
	default:
		return Record{}, false, nil
	}

	rect, err := gamemath.NewRect(o.X, o.Y, o.Width, o.Height)
	if err != nil {
		return Record{}, false, err
	}
	rec := Record{Type: typ, Rect: rect}
	if typ == TypeSlope {
		s, err := gamemath.NewSlope(rect,
			o.Properties.GetFloat("leftOffset"), o.Properties.GetFloat("rightOffset"))
		if err != nil {
			return Record{}, false, err
		}
		rec.LeftOffset, rec.RightOffset = s.LeftOffset, s.RightOffset
	}
	return rec, true, nil
}

// ListLevels returns the level files (.txt and .tmx) under dir in fsys,
// sorted by name.
func ListLevels(fsys fs.FS, dir string) ([]string, error) {
	var names []string
	for _, pattern := range []string{"*.txt", "*.tmx"} {
		matches, err := fs.Glob(fsys, path.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", pattern, err)
		}
		names = append(names, matches...)
	}
	sort.Strings(names)
	return names, nil
}

// Load dispatches on the file extension.
func Load(fsys fs.FS, name string) (*Description, error) {
	if strings.HasSuffix(name, ".tmx") {
		return LoadTMX(fsys, name)
	}
	return LoadFile(fsys, name)
}
