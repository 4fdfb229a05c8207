package rakefile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindHeaders(t *testing.T) {
	src := `namespace :deploy do
  task :symbol do
  end
  task "quoted" do
  end
  task 'single' => :environment do
  end
  task bare: :environment do
  end
  task :with_args, [:id] => :environment do
  end
  task :bare_eol
  # task :commented do
  taskforce :nope do
  end
end
`
	got := FindHeaders(lines(src))
	assert.Equal(t, []Header{
		{Line: 1, Name: "symbol"},
		{Line: 3, Name: "quoted"},
		{Line: 5, Name: "single"},
		{Line: 7, Name: "bare"},
		{Line: 9, Name: "with_args"},
		{Line: 11, Name: "bare_eol"},
	}, got)
}

func TestHeaderPattern(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"task :build do", true},
		{"  task :build do", true},
		{"task \"build\" do", true},
		{"task build: :environment do", true},
		{"task :build => [:compile]", true},
		{"task :build", true},
		{"task :build_all do", false},
		{"task build_all: :environment do", false},
		{"task :rebuild do", false},
		{"# task :build do", false},
		{"task :builder do", false},
	}
	re := headerPattern("build")
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, re.MatchString(tt.line))
		})
	}
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, SplitLines(nil))
	assert.Equal(t, []string{"a", "b"}, SplitLines([]byte("a\r\nb\n")))
	assert.Equal(t, []string{"a", "", "b"}, SplitLines([]byte("a\n\nb")))
}
