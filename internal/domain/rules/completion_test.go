package rules

import "testing"

func TestCompletionPercentage(t *testing.T) {
	cases := []struct {
		name       string
		bio        string
		education  []string
		experience []string
		interests  int
		want       int
	}{
		{name: "empty profile", want: 0},
		{name: "bio only", bio: "full-stack student", want: 40},
		{name: "whitespace bio does not count", bio: "   ", want: 0},
		{name: "everything filled", bio: "x", education: []string{"cs degree"}, experience: []string{"internship"}, interests: 3, want: 100},
		{name: "lists without bio", education: []string{"a"}, experience: []string{"b"}, interests: 1, want: 60},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CompletionPercentage(tc.bio, tc.education, tc.experience, tc.interests)
			if got != tc.want {
				t.Fatalf("unexpected completion: got %d want %d", got, tc.want)
			}
		})
	}
}
