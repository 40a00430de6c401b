package ros

import (
	"math"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"go.viam.com/walker/lidar"
)

// Stamp is a ROS time.
type Stamp struct {
	Secs  int
	Nsecs int
}

// Time converts the stamp to a time.Time.
func (s Stamp) Time() time.Time {
	return time.Unix(int64(s.Secs), int64(s.Nsecs)).UTC()
}

// LaserScanMessage is a sensor_msgs/LaserScan message as decoded from a rosbag.
type LaserScanMessage struct {
	Meta Stamp
	Data struct {
		Header struct {
			Seq     uint32
			Stamp   Stamp
			FrameID string `json:"frame_id"`
		}
		AngleMin       float64 `json:"angle_min"`
		AngleMax       float64 `json:"angle_max"`
		AngleIncrement float64 `json:"angle_increment"`
		TimeIncrement  float64 `json:"time_increment"`
		ScanTime       float64 `json:"scan_time"`
		RangeMin       float64 `json:"range_min"`
		RangeMax       float64 `json:"range_max"`
		// Ranges is left undecoded since rays without a return may be written as null or as
		// strings such as "NaN" and "inf".
		Ranges      []interface{}
		Intensities []interface{}
	}
}

// DecodeLaserScan decodes one message as returned by AllMessagesForTopic.
func DecodeLaserScan(raw map[string]interface{}) (*LaserScanMessage, error) {
	var msg LaserScanMessage
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           &msg,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, errors.Wrap(err, "failed to decode LaserScan message")
	}
	return &msg, nil
}

// Scan converts the message to a lidar scan.
func (msg *LaserScanMessage) Scan() (*lidar.Scan, error) {
	ranges := make([]float64, len(msg.Data.Ranges))
	for i, raw := range msg.Data.Ranges {
		r, err := rangeValue(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "range %d", i)
		}
		ranges[i] = r
	}
	stamp := msg.Data.Header.Stamp
	if stamp.Secs == 0 && stamp.Nsecs == 0 {
		stamp = msg.Meta
	}
	return &lidar.Scan{
		Seq:            msg.Data.Header.Seq,
		Time:           stamp.Time(),
		FrameID:        msg.Data.Header.FrameID,
		AngleMin:       msg.Data.AngleMin,
		AngleMax:       msg.Data.AngleMax,
		AngleIncrement: msg.Data.AngleIncrement,
		RangeMin:       msg.Data.RangeMin,
		RangeMax:       msg.Data.RangeMax,
		Ranges:         ranges,
	}, nil
}

func rangeValue(raw interface{}) (float64, error) {
	switch v := raw.(type) {
	case nil:
		return math.NaN(), nil
	case bool:
		return 0, errors.Errorf("unexpected range value %v", v)
	case string:
		// strconv accepts "NaN", "inf" and "infinity" in any case.
		f, err := cast.ToFloat64E(strings.TrimSpace(v))
		if err != nil {
			return 0, errors.Errorf("unexpected range value %q", v)
		}
		return f, nil
	default:
		f, err := cast.ToFloat64E(raw)
		if err != nil {
			return 0, errors.Wrap(err, "unexpected range value")
		}
		return f, nil
	}
}
