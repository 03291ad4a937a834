package main

import (
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/quasilyte/gdata/v2"

	"github.com/xqrs/swipeview/swiper"
)

const (
	stateObject   = "swiper"
	indexProperty = "index"
)

// resumeStore persists the last committed page between runs.
type resumeStore struct {
	manager *gdata.Manager
}

func openResumeStore(appName string) (*resumeStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, err
	}
	return &resumeStore{manager: m}, nil
}

// Index returns the saved page, if any.
func (s *resumeStore) Index() (int, bool) {
	if s == nil || !s.manager.ObjectPropExists(stateObject, indexProperty) {
		return 0, false
	}
	data, err := s.manager.LoadObjectProp(stateObject, indexProperty)
	if err != nil {
		return 0, false
	}
	index, err := strconv.Atoi(string(data))
	if err != nil {
		return 0, false
	}
	return index, true
}

// SaveIndex stores the committed page.
func (s *resumeStore) SaveIndex(index int) error {
	if s == nil {
		return nil
	}
	return s.manager.SaveObjectProp(stateObject, indexProperty, []byte(strconv.Itoa(index)))
}

// eventRecord is one line of the event log.
type eventRecord struct {
	Time   time.Time `json:"time"`
	Event  string    `json:"event"`
	Index  int       `json:"index"`
	Next   *int      `json:"next,omitempty"`
	Offset *float64  `json:"offset,omitempty"`
	Target *float64  `json:"target,omitempty"`
	Speed  *float64  `json:"velocity,omitempty"`
}

// eventLog writes swiper events as JSON lines.
type eventLog struct {
	mu  sync.Mutex
	f   *os.File
	enc *json.Encoder
}

func openEventLog(path string) (*eventLog, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &eventLog{f: f, enc: json.NewEncoder(f)}, nil
}

func (l *eventLog) write(r eventRecord) {
	if l == nil {
		return
	}
	r.Time = time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.enc.Encode(r)
}

func (l *eventLog) Close() error {
	if l == nil {
		return nil
	}
	return l.f.Close()
}

func withInfo(r eventRecord, info swiper.AnimationInfo) eventRecord {
	r.Offset = &info.CurrentOffset
	r.Target = &info.TargetOffset
	r.Speed = &info.Velocity
	return r
}

// Events returns callbacks recording every swiper event, chained in front of
// next.
func (l *eventLog) Events(next swiper.Events) swiper.Events {
	return swiper.Events{
		OnChange: func(index int) {
			l.write(eventRecord{Event: "change", Index: index})
			if next.OnChange != nil {
				next.OnChange(index)
			}
		},
		OnAnimationStart: func(current, target int, info swiper.AnimationInfo) {
			l.write(withInfo(eventRecord{Event: "animation_start", Index: current, Next: &target}, info))
		},
		OnAnimationEnd: func(current int, info swiper.AnimationInfo) {
			l.write(withInfo(eventRecord{Event: "animation_end", Index: current}, info))
		},
		OnGestureSwipe: func(index int, info swiper.AnimationInfo) {
			l.write(withInfo(eventRecord{Event: "gesture_swipe", Index: index}, info))
		},
		OnIndicatorChange: func(index int) {
			l.write(eventRecord{Event: "indicator_change", Index: index})
			if next.OnIndicatorChange != nil {
				next.OnIndicatorChange(index)
			}
		},
	}
}
