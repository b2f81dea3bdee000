package parsers

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestFactory_GetParser(t *testing.T) {
	factory := NewFactory()
	tests := []struct {
		name     string
		filename string
		want     string
		wantErr  bool
	}{
		{name: "csv file", filename: "matches.csv", want: "csv"},
		{name: "upper case extension", filename: "MATCHES.CSV", want: "csv"},
		{name: "xlsx file", filename: "matches.xlsx", want: "xlsx"},
		{name: "xls file", filename: "matches.xls", want: "xls"},
		{name: "unsupported file", filename: "matches.txt", wantErr: true},
		{name: "no extension", filename: "matches", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser, err := factory.GetParser(tt.filename)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedFileType)
				return
			}
			require.NoError(t, err)
			switch tt.want {
			case "csv":
				_, ok := parser.(*CSVParser)
				require.True(t, ok)
			case "xlsx":
				_, ok := parser.(*XLSXParser)
				require.True(t, ok)
			case "xls":
				_, ok := parser.(*XLSParser)
				require.True(t, ok)
			default:
				t.Fatalf("unexpected parser type %q", tt.want)
			}
		})
	}
}

func TestCSVParser_Parse(t *testing.T) {
	parser := NewCSVParser()
	tests := []struct {
		name        string
		data        string
		wantErr     error
		wantHeaders []string
		wantRows    []RawRow
	}{
		{
			name: "template headers with hints",
			data: "homeTeam,awayTeam,date (YYYY-MM-DD),venue,matchNo\nLions,Tigers,2024-05-01,Main Stadium,1\n",
			wantHeaders: []string{"homeTeam", "awayTeam", "date", "venue", "matchNo"},
			wantRows: []RawRow{{
				"homeTeam": {Text: "Lions"},
				"awayTeam": {Text: "Tigers"},
				"date":     {Text: "2024-05-01"},
				"venue":    {Text: "Main Stadium"},
				"matchNo":  {Text: "1"},
			}},
		},
		{
			name:        "headers are matched loosely",
			data:        "Home Team,AWAY_TEAM,Date,Venue,Match No,Home Score\nLions,Tigers,2024-05-01,Main,7,2\n",
			wantHeaders: []string{"homeTeam", "awayTeam", "date", "venue", "matchNo", "homeScore"},
			wantRows: []RawRow{{
				"homeTeam":  {Text: "Lions"},
				"awayTeam":  {Text: "Tigers"},
				"date":      {Text: "2024-05-01"},
				"venue":     {Text: "Main"},
				"matchNo":   {Text: "7"},
				"homeScore": {Text: "2"},
			}},
		},
		{
			name:        "blank rows and cells are dropped",
			data:        "homeTeam,awayTeam,venue\n,,\nLions,,Main\n\n",
			wantHeaders: []string{"homeTeam", "awayTeam", "venue"},
			wantRows: []RawRow{{
				"homeTeam": {Text: "Lions"},
				"venue":    {Text: "Main"},
			}},
		},
		{
			name:        "short records",
			data:        "homeTeam,awayTeam,venue\nLions\n",
			wantHeaders: []string{"homeTeam", "awayTeam", "venue"},
			wantRows:    []RawRow{{"homeTeam": {Text: "Lions"}}},
		},
		{
			name:    "empty file",
			data:    "",
			wantErr: ErrEmptyFile,
		},
		{
			name:    "header only",
			data:    "homeTeam,awayTeam,date,venue,matchNo\n",
			wantErr: ErrEmptyFile,
		},
		{
			name:    "header and blank rows",
			data:    "homeTeam,awayTeam\n , \n,\n",
			wantErr: ErrEmptyFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet, err := parser.Parse([]byte(tt.data))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHeaders, sheet.Headers)
			assert.Equal(t, tt.wantRows, sheet.Rows)
		})
	}
}

func TestCSVParser_Malformed(t *testing.T) {
	_, err := NewCSVParser().Parse([]byte("homeTeam,awayTeam\n\"Lions,Tigers\n"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmptyFile)
}

func TestParse_IsDeterministic(t *testing.T) {
	csvData := []byte("homeTeam,awayTeam,date,venue,matchNo\nLions,Tigers,2024-05-01,Main,1\nBears,Wolves,2024-05-02,North,2\nLions,Bears,2024-05-09,Main,3\n")
	xlsxData := buildXLSX(t, [][]string{
		{"homeTeam", "awayTeam", "date", "venue", "matchNo"},
		{"Lions", "Tigers", "2024-05-01", "Main", "1"},
		{"Bears", "Wolves", "2024-05-02", "North", "2"},
	})

	for name, tc := range map[string]struct {
		parser Parser
		data   []byte
	}{
		"csv":  {parser: NewCSVParser(), data: csvData},
		"xlsx": {parser: NewXLSXParser(), data: xlsxData},
	} {
		t.Run(name, func(t *testing.T) {
			first, err := tc.parser.Parse(tc.data)
			require.NoError(t, err)
			second, err := tc.parser.Parse(tc.data)
			require.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}
}

func TestXLSXParser_Parse(t *testing.T) {
	parser := NewXLSXParser()
	tests := []struct {
		name         string
		rows         [][]string
		wantErr      error
		wantRowCount int
		wantFirst    RawRow
	}{
		{
			name: "normal sheet",
			rows: [][]string{
				{"homeTeam", "awayTeam", "date (YYYY-MM-DD)", "venue", "matchNo", "referee"},
				{"Lions", "Tigers", "2024-05-01", "Main Stadium", "1", "J. Smith"},
				{"Bears", "Wolves", "2024-05-02", "North Park", "2"},
			},
			wantRowCount: 2,
			wantFirst: RawRow{
				"homeTeam": {Text: "Lions"},
				"awayTeam": {Text: "Tigers"},
				"date":     {Text: "2024-05-01"},
				"venue":    {Text: "Main Stadium"},
				"matchNo":  {Text: "1"},
				"referee":  {Text: "J. Smith"},
			},
		},
		{
			name: "leading blank rows before header",
			rows: [][]string{
				{},
				{"homeTeam", "awayTeam"},
				{"Lions", "Tigers"},
			},
			wantRowCount: 1,
			wantFirst:    RawRow{"homeTeam": {Text: "Lions"}, "awayTeam": {Text: "Tigers"}},
		},
		{
			name:    "header only",
			rows:    [][]string{{"homeTeam", "awayTeam", "date", "venue", "matchNo"}},
			wantErr: ErrEmptyFile,
		},
		{
			name:    "empty sheet",
			rows:    nil,
			wantErr: ErrEmptyFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet, err := parser.Parse(buildXLSX(t, tt.rows))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, sheet.Rows, tt.wantRowCount)
			assert.Equal(t, tt.wantFirst, sheet.Rows[0])
		})
	}
}

func TestXLSXParser_NativeDateCell(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	header := []interface{}{"homeTeam", "awayTeam", "date", "venue", "matchNo"}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	row := []interface{}{"Lions", "Tigers", "", "Main Stadium", 1}
	require.NoError(t, f.SetSheetRow(sheet, "A2", &row))
	require.NoError(t, f.SetCellValue(sheet, "C2", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	parsed, err := NewXLSXParser().Parse(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, parsed.Rows, 1)

	date := parsed.Rows[0]["date"]
	require.NotNil(t, date.Time)
	assert.True(t, date.Time.Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)), "got %s", date.Time)
	assert.Equal(t, "1", parsed.Rows[0].Value("matchNo"))
	assert.Nil(t, parsed.Rows[0]["matchNo"].Time)
}

func TestXLSXParser_NotAWorkbook(t *testing.T) {
	_, err := NewXLSXParser().Parse([]byte("homeTeam,awayTeam\nLions,Tigers\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open XLSX file")
}

func TestXLSParser_Parse(t *testing.T) {
	parser := NewXLSParser()
	tests := []struct {
		name         string
		data         []byte
		wantErr      error
		wantContains string
		wantRowCount int
		wantFirst    RawRow
	}{
		{
			name: "xlsx workbook saved with xls extension",
			data: buildXLSX(t, [][]string{
				{"homeTeam", "awayTeam", "date", "venue", "matchNo"},
				{"Lions", "Tigers", "2024-05-01", "Main Stadium", "1"},
			}),
			wantRowCount: 1,
			wantFirst: RawRow{
				"homeTeam": {Text: "Lions"},
				"awayTeam": {Text: "Tigers"},
				"date":     {Text: "2024-05-01"},
				"venue":    {Text: "Main Stadium"},
				"matchNo":  {Text: "1"},
			},
		},
		{
			name:         "csv text with xls extension",
			data:         []byte("homeTeam,awayTeam\nLions,Tigers\n"),
			wantErr:      ErrNotXLSWorkbook,
			wantContains: ".csv extension",
		},
		{
			name:    "empty upload",
			data:    nil,
			wantErr: ErrEmptyFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet, err := parser.Parse(tt.data)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Contains(t, err.Error(), tt.wantContains)
				return
			}
			require.NoError(t, err)
			require.Len(t, sheet.Rows, tt.wantRowCount)
			assert.Equal(t, tt.wantFirst, sheet.Rows[0])
		})
	}
}

func TestRecordSheet(t *testing.T) {
	tests := []struct {
		name      string
		records   [][]string
		wantErr   error
		wantRows  []RawRow
		wantHeads []string
	}{
		{
			name: "missing rows and ragged records",
			records: [][]string{
				nil,
				{"Home Team", "Away Team", "Date", "", "Match No"},
				{"Lions", "Tigers", "2024-05-01T00:00:00Z"},
				nil,
				{"Bears", "Wolves", "2024-05-02", "ignored", " 2 "},
			},
			wantHeads: []string{"homeTeam", "awayTeam", "date", "", "matchNo"},
			wantRows: []RawRow{
				{"homeTeam": {Text: "Lions"}, "awayTeam": {Text: "Tigers"}, "date": {Text: "2024-05-01T00:00:00Z"}},
				{"homeTeam": {Text: "Bears"}, "awayTeam": {Text: "Wolves"}, "date": {Text: "2024-05-02"}, "matchNo": {Text: "2"}},
			},
		},
		{
			name:    "header without data",
			records: [][]string{{"homeTeam"}, {"", " "}},
			wantErr: ErrEmptyFile,
		},
		{
			name:    "no records",
			wantErr: ErrEmptyFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet, err := recordSheet(tt.records)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHeads, sheet.Headers)
			assert.Equal(t, tt.wantRows, sheet.Rows)
		})
	}
}

func TestRawRow_Accessors(t *testing.T) {
	row := RawRow{"venue": {Text: "  Main  "}, "blank": {Text: " "}}
	assert.Equal(t, "Main", row.Value("venue"))
	assert.True(t, row.Has("venue"))
	assert.False(t, row.Has("blank"))
	assert.False(t, row.Has("missing"))
}

func buildXLSX(t *testing.T, rows [][]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	for idx, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, idx+1)
		require.NoError(t, err)
		cells := make([]interface{}, len(row))
		for i, val := range row {
			cells[i] = val
		}
		require.NoError(t, f.SetSheetRow(sheet, axis, &cells))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())
	return buf.Bytes()
}
