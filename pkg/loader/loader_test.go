package loader

import (
	"errors"
	"strings"
	"testing"

	"github.com/dtnitsch/query-coverage/models"
)

func mustTable(t *testing.T, data string) *Table {
	t.Helper()
	tbl, err := ReadTable(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadTable() error = %v", err)
	}
	return tbl
}

func TestReadTableDelimiters(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "comma", data: "Query,Clicks\nshoes,3\n"},
		{name: "tab", data: "Query\tClicks\nshoes\t3\n"},
		{name: "semicolon", data: "Query;Clicks\nshoes;3\n"},
		{name: "utf8 bom", data: "\xef\xbb\xbfQuery,Clicks\nshoes,3\n"},
		{name: "blank lines", data: "Query,Clicks\n\n,\nshoes,3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := mustTable(t, tt.data)
			if len(tbl.Header) != 2 || normalizeHeader(tbl.Header[0]) != "query" {
				t.Fatalf("Header = %q, want [Query Clicks]", tbl.Header)
			}
			if len(tbl.Rows) != 1 || tbl.Rows[0][0] != "shoes" {
				t.Errorf("Rows = %q, want one row for shoes", tbl.Rows)
			}
		})
	}
}

func TestReadTableUTF16(t *testing.T) {
	// "Query\nshoes\n" as UTF-16LE with a byte order mark
	src := "Query\nshoes\n"
	buf := []byte{0xff, 0xfe}
	for _, r := range src {
		buf = append(buf, byte(r), 0)
	}
	tbl, err := ReadTable(strings.NewReader(string(buf)))
	if err != nil {
		t.Fatalf("ReadTable() error = %v", err)
	}
	if len(tbl.Rows) != 1 || tbl.Rows[0][0] != "shoes" {
		t.Errorf("Rows = %q, want [[shoes]]", tbl.Rows)
	}
}

func TestReadTableEmpty(t *testing.T) {
	_, err := ReadTable(strings.NewReader("  \n"))
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("ReadTable() error = %v, want ErrEmptyInput", err)
	}
}

func TestLoadQueries(t *testing.T) {
	tbl := mustTable(t, `Top queries,Landing Page,Clicks,Impressions,Position
running shoes,https://example.com/shoes,"1,204",10000,3.2
,https://example.com/empty,5,10,1
running shoes,https://example.com/,12,n/a,7
trail shoes,,4,40,9
trail shoes,https://example.com/trail,4,40,9
`)

	set, err := LoadQueries(tbl)
	if err != nil {
		t.Fatalf("LoadQueries() error = %v", err)
	}
	if !set.HasLandingPage {
		t.Error("HasLandingPage = false, want true")
	}
	if set.Stats.Rows != 5 || set.Stats.Skipped != 1 || set.Stats.Unlinked != 1 {
		t.Errorf("Stats = %+v, want 5 rows, 1 skipped, 1 unlinked", set.Stats)
	}
	if len(set.Queries) != 2 || set.Queries[0].Text != "running shoes" || set.Queries[1].Text != "trail shoes" {
		t.Fatalf("Queries = %+v", set.Queries)
	}
	if len(set.Links) != 3 {
		t.Fatalf("Links = %d, want 3", len(set.Links))
	}

	first := set.Links[0].Query
	if first.Clicks == nil || *first.Clicks != 1204 {
		t.Errorf("Clicks = %v, want 1204", first.Clicks)
	}
	if first.Position == nil || *first.Position != 3.2 {
		t.Errorf("Position = %v, want 3.2", first.Position)
	}
	if imp := set.Links[1].Query.Impressions; imp != nil {
		t.Errorf("Impressions = %v, want nil for unparsable cell", *imp)
	}
}

func TestLoadQueriesWithoutLandingPage(t *testing.T) {
	tbl := mustTable(t, "Query,Clicks\nshoes,1\nboots,2\nshoes,3\n")
	set, err := LoadQueries(tbl)
	if err != nil {
		t.Fatalf("LoadQueries() error = %v", err)
	}
	if set.HasLandingPage {
		t.Error("HasLandingPage = true, want false")
	}
	if len(set.Links) != 0 {
		t.Errorf("Links = %d, want 0", len(set.Links))
	}
	if len(set.Queries) != 2 {
		t.Errorf("Queries = %d, want 2 distinct", len(set.Queries))
	}
}

func TestLoadQueriesBlankLandingPage(t *testing.T) {
	tbl := mustTable(t, "Query,Landing Page,Clicks\nrunning shoes,,10\nboots,https://x.com/b,5\n")
	set, err := LoadQueries(tbl)
	if err != nil {
		t.Fatalf("LoadQueries() error = %v", err)
	}
	if len(set.Queries) != 2 || set.Queries[0].Text != "running shoes" || set.Queries[1].Text != "boots" {
		t.Errorf("Queries = %+v, want running shoes and boots", set.Queries)
	}
	if len(set.Links) != 1 || set.Links[0].URL != "https://x.com/b" {
		t.Errorf("Links = %+v, want only the boots link", set.Links)
	}
	if set.Stats.Skipped != 0 || set.Stats.Unlinked != 1 {
		t.Errorf("Stats = %+v, want 0 skipped, 1 unlinked", set.Stats)
	}

	top := SelectTop(set, 1)
	if len(top.Queries) != 1 || top.Queries[0].Text != "running shoes" || len(top.Links) != 0 {
		t.Errorf("SelectTop(1) = %+v, want the unlinked top query", top)
	}
}

func TestLoadQueriesErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{name: "missing query column", data: "Keyword Difficulty,Clicks\n1,2\n", want: ErrMissingColumn},
		{name: "no rows", data: "Query,Clicks\n", want: ErrNoUsableRows},
		{name: "all rows blank query", data: "Query,Clicks\n ,2\n\"\",3\n", want: ErrNoUsableRows},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadQueries(mustTable(t, tt.data))
			if !errors.Is(err, tt.want) {
				t.Fatalf("LoadQueries() error = %v, want %v", err, tt.want)
			}
			var inErr *InputError
			if !errors.As(err, &inErr) || inErr.Input != InputQueries {
				t.Errorf("error %v does not name the queries input", err)
			}
		})
	}
}

func TestLoadPagesScreamingFrog(t *testing.T) {
	tbl := mustTable(t, `Address,Title 1,Title 1 Length,Meta Description 1,H1-1,H2-1,H2-2,Post 1
https://example.com/shoes,Best Running Shoes,18,Shop shoes,Shoes,Sizing,Care,Body text
https://example.com/shoes,Duplicate,9,,,,,
,No URL,6,,,,,
https://example.com/,Home,4,,Welcome,,Latest,
`)

	set, err := LoadPages(tbl)
	if err != nil {
		t.Fatalf("LoadPages() error = %v", err)
	}
	if set.Stats.Rows != 4 || set.Stats.Skipped != 2 {
		t.Errorf("Stats = %+v, want 4 rows, 2 skipped", set.Stats)
	}
	if len(set.Pages) != 2 {
		t.Fatalf("Pages = %d, want 2", len(set.Pages))
	}
	if len(set.Columns) != len(models.AllFields) {
		t.Errorf("Columns = %v, want all fields", set.Columns)
	}

	shoes := set.Pages[0]
	if shoes.Fields[models.FieldTitle] != "Best Running Shoes" {
		t.Errorf("title = %q (length column must not be merged in)", shoes.Fields[models.FieldTitle])
	}
	if got := shoes.Fields.Segments(models.FieldH2); len(got) != 2 || got[0] != "Sizing" || got[1] != "Care" {
		t.Errorf("h2 segments = %q, want [Sizing Care]", got)
	}
	if shoes.Fields[models.FieldBody] != "Body text" {
		t.Errorf("body = %q", shoes.Fields[models.FieldBody])
	}

	home := set.Pages[1]
	if got := home.Fields.Segments(models.FieldH2); len(got) != 1 || got[0] != "Latest" {
		t.Errorf("home h2 segments = %q, want [Latest]", got)
	}
}

func TestLoadPagesMissingH2Column(t *testing.T) {
	set, err := LoadPages(mustTable(t, "URL,Title\nhttps://example.com/a,A\n"))
	if err != nil {
		t.Fatalf("LoadPages() error = %v", err)
	}
	h2, ok := set.Pages[0].Fields[models.FieldH2]
	if !ok || h2 != "" {
		t.Errorf("h2 = %q (present %v), want empty string slot", h2, ok)
	}
	if len(set.Columns) != 1 || set.Columns[0] != models.FieldTitle {
		t.Errorf("Columns = %v, want [title]", set.Columns)
	}
}

func TestLoadPagesErrors(t *testing.T) {
	_, err := LoadPages(mustTable(t, "Title,H1\nA,B\n"))
	if !errors.Is(err, ErrMissingColumn) {
		t.Errorf("LoadPages() error = %v, want ErrMissingColumn", err)
	}
	_, err = LoadPages(mustTable(t, "Address,Title\n,A\n"))
	if !errors.Is(err, ErrNoUsableRows) {
		t.Errorf("LoadPages() error = %v, want ErrNoUsableRows", err)
	}
	var inErr *InputError
	if !errors.As(err, &inErr) || inErr.Input != InputPages {
		t.Errorf("error %v does not name the pages input", err)
	}
}

func TestSelectTop(t *testing.T) {
	tbl := mustTable(t, `Query,Page,Clicks,Impressions
a,https://x/1,1,100
b,https://x/2,9,10
c,https://x/3,9,50
a,https://x/4,2,5
d,https://x/5,,1000
`)
	set, err := LoadQueries(tbl)
	if err != nil {
		t.Fatal(err)
	}

	top := SelectTop(set, 2)
	if len(top.Queries) != 2 || top.Queries[0].Text != "b" || top.Queries[1].Text != "c" {
		t.Errorf("Queries = %+v, want [b c] in input order", top.Queries)
	}
	if len(top.Links) != 2 {
		t.Errorf("Links = %d, want 2", len(top.Links))
	}

	if all := SelectTop(set, 0); len(all.Queries) != 4 {
		t.Errorf("SelectTop(0) kept %d queries, want 4", len(all.Queries))
	}
}

func TestParseMetric(t *testing.T) {
	tests := []struct {
		in   string
		want *float64
	}{
		{in: "12", want: ptr(12)},
		{in: "1,234", want: ptr(1234)},
		{in: "4.5%", want: ptr(4.5)},
		{in: "", want: nil},
		{in: "n/a", want: nil},
		{in: "NaN", want: nil},
		{in: "Inf", want: nil},
	}
	for _, tt := range tests {
		got := parseMetric(tt.in)
		switch {
		case got == nil && tt.want == nil:
		case got == nil || tt.want == nil || *got != *tt.want:
			t.Errorf("parseMetric(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func ptr(v float64) *float64 { return &v }
