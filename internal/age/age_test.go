package age

import (
	"testing"
	"time"
)

func TestAgeData(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	started := now.Add(-4 * time.Minute)
	future := now.Add(2 * time.Minute)

	cases := []struct {
		name string
		then time.Time
		want time.Duration
		ok   bool
	}{
		{
			name: "uses timestamp",
			then: started,
			want: 4 * time.Minute,
			ok:   true,
		},
		{
			name: "clamps future timestamp",
			then: future,
			want: 0,
			ok:   true,
		},
		{
			name: "missing timestamp",
			then: time.Time{},
			want: 0,
			ok:   false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := AgeData(tc.then, now)
			if got != tc.want || ok != tc.ok {
				t.Fatalf("expected %s/%t, got %s/%t", tc.want, tc.ok, got, ok)
			}
		})
	}
}
