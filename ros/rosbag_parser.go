// Package ros bridges recorded ROS data into the walker.
package ros

import (
	"encoding/json"
	"io"
	"os"

	"github.com/edaniels/gobag/rosbag"
	"github.com/pkg/errors"
	"go.viam.com/utils"

	"go.viam.com/walker/lidar"
)

// ReadBag reads the contents of a rosbag into a gobag data structure.
func ReadBag(filename string) (*rosbag.RosBag, error) {
	//nolint:gosec
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open input file")
	}
	defer utils.UncheckedErrorFunc(f.Close)

	rb := rosbag.NewRosBag()
	if err := rb.Read(f); err != nil {
		return nil, errors.Wrapf(err, "unable to read ros bag %q", filename)
	}
	return rb, nil
}

// AllMessagesForTopic returns all messages for a specific topic in the ros bag.
func AllMessagesForTopic(rb *rosbag.RosBag, topic string) ([]map[string]interface{}, error) {
	if err := rb.ParseTopicsToJSON(
		"",
		func(int64) bool { return true },
		func(t string) bool { return t == topic },
		false,
	); err != nil {
		return nil, errors.Wrapf(err, "error while parsing bag to JSON")
	}

	msgs := rb.TopicsAsJSON[topic]
	if msgs == nil {
		return nil, errors.Errorf("no messages for topic %s", topic)
	}

	all := []map[string]interface{}{}
	for {
		data, err := msgs.ReadBytes('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		message := map[string]interface{}{}
		if err := json.Unmarshal(data, &message); err != nil {
			return nil, err
		}
		all = append(all, message)
	}
	return all, nil
}

// ScansFromMessages converts raw LaserScan messages into scans, in order.
func ScansFromMessages(msgs []map[string]interface{}) ([]*lidar.Scan, error) {
	scans := make([]*lidar.Scan, 0, len(msgs))
	for i, raw := range msgs {
		msg, err := DecodeLaserScan(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "message %d", i)
		}
		scan, err := msg.Scan()
		if err != nil {
			return nil, errors.Wrapf(err, "message %d", i)
		}
		scans = append(scans, scan)
	}
	return scans, nil
}

// LaserScansForTopic reads every LaserScan published on topic in the bag.
func LaserScansForTopic(rb *rosbag.RosBag, topic string) ([]*lidar.Scan, error) {
	msgs, err := AllMessagesForTopic(rb, topic)
	if err != nil {
		return nil, err
	}
	return ScansFromMessages(msgs)
}
