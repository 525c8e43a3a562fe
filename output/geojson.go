package output

import (
	"os"

	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
	"github.com/tsinghua-fib-lab/signal-sim-rl/entity/junction/trafficlight"
	"github.com/tsinghua-fib-lab/signal-sim-rl/entity/vehicle"
)

// FrameGeoJSON 当前帧的GeoJSON表示
// 功能：每辆车一个点要素，每个信号灯一个无几何的属性要素
func FrameGeoJSON(vehicles []vehicle.Vehicle, lights []trafficlight.TrafficLight) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, v := range vehicles {
		f := geojson.NewPointFeature([]float64{v.Position.X(), v.Position.Y()})
		f.ID = v.ID
		f.SetProperty("kind", "vehicle")
		f.SetProperty("category", string(v.Category))
		f.SetProperty("heading", string(v.Heading))
		f.SetProperty("speed", v.Speed)
		f.SetProperty("waiting", v.IsWaiting)
		f.SetProperty("color", v.Color)
		fc.AddFeature(f)
	}
	for _, l := range lights {
		f := geojson.NewFeature(nil)
		f.ID = l.ID
		f.SetProperty("kind", "traffic_light")
		f.SetProperty("intersection", l.Intersection)
		f.SetProperty("pair", string(l.Pair))
		f.SetProperty("phase", string(l.Phase))
		f.SetProperty("time_remaining", l.TimeRemaining)
		f.SetProperty("override", l.EmergencyOverride)
		fc.AddFeature(f)
	}
	return fc
}

// WriteGeoJSON 写出GeoJSON文件
func WriteGeoJSON(path string, fc *geojson.FeatureCollection) error {
	b, err := fc.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "marshal geojson")
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	log.Infof("frame written to %s (%d features)", path, len(fc.Features))
	return nil
}
