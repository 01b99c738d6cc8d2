package datasync

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/studytrack/internal/calendar"
	mock_record "github.com/at-ishikawa/studytrack/internal/mocks/record"
	"github.com/at-ishikawa/studytrack/internal/record"
	"github.com/at-ishikawa/studytrack/internal/roadmap"
	"github.com/at-ishikawa/studytrack/internal/testutil"
	"github.com/at-ishikawa/studytrack/internal/tracker"
)

type mockRepositories struct {
	logs        *mock_record.MockLogRepository
	goals       *mock_record.MockGoalRepository
	projects    *mock_record.MockProjectRepository
	quizzes     *mock_record.MockQuizRepository
	settings    *mock_record.MockSettingRepository
	assessments *mock_record.MockAssessmentRepository
}

func newMockRepositories(t *testing.T) (tracker.Repositories, mockRepositories) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mocks := mockRepositories{
		logs:        mock_record.NewMockLogRepository(ctrl),
		goals:       mock_record.NewMockGoalRepository(ctrl),
		projects:    mock_record.NewMockProjectRepository(ctrl),
		quizzes:     mock_record.NewMockQuizRepository(ctrl),
		settings:    mock_record.NewMockSettingRepository(ctrl),
		assessments: mock_record.NewMockAssessmentRepository(ctrl),
	}
	return tracker.Repositories{
		Logs:        mocks.logs,
		Goals:       mocks.goals,
		Projects:    mocks.projects,
		Quizzes:     mocks.quizzes,
		Settings:    mocks.settings,
		Assessments: mocks.assessments,
	}, mocks
}

func intPtr(v int) *int {
	return &v
}

func testSnapshot() *Snapshot {
	start := calendar.NewDate(2025, 1, 6)
	return &Snapshot{
		Version:    SnapshotVersion,
		ExportedOn: calendar.NewDate(2025, 2, 1),
		StartDate:  &start,
		DailyLogs: []DailyLogEntry{
			{Date: calendar.NewDate(2025, 1, 6), Topics: []string{"NumPy", "Pandas"}, Notes: "broadcasting", Confidence: 4},
		},
		WeeklyGoals: []WeeklyGoalEntry{
			{ID: "g-1", WeekStart: start, Text: "Finish NumPy exercises", Done: true},
		},
		Projects: []ProjectEntry{
			{ID: "p-1", Name: "Loan Default Prediction", Status: record.ProjectStatusInProgress, RoadmapDay: intPtr(26)},
		},
		Quizzes: []QuizResultEntry{
			{Date: calendar.NewDate(2025, 1, 7), Score: 12, Total: 15, Topic: "Python + Core Math + NumPy/Pandas"},
		},
		Assessments: []AssessmentEntry{
			{Month: "2025-01", Reflection: "good start", Rating: 8},
		},
	}
}

func TestSnapshot_YAMLRoundTrip(t *testing.T) {
	want := testSnapshot()

	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, want))
	assert.Contains(t, buf.String(), "roadmap_start_date: \"2025-01-06\"")
	assert.Contains(t, buf.String(), "quiz_results:")

	got, err := ReadYAML(&buf)
	require.NoError(t, err)
	assert.Equal(t, want.StartDate.String(), got.StartDate.String())
	require.Len(t, got.DailyLogs, 1)
	assert.Equal(t, want.DailyLogs[0].Topics, got.DailyLogs[0].Topics)
	assert.Equal(t, "2025-01-06", got.DailyLogs[0].Date.String())
	require.Len(t, got.Projects, 1)
	assert.Equal(t, 26, *got.Projects[0].RoadmapDay)
	assert.Equal(t, record.ProjectStatusInProgress, got.Projects[0].Status)
	assert.Equal(t, want.Assessments, got.Assessments)
}

func TestReadYAML(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:  "minimal document",
			input: "version: 1\nexported_on: \"2025-02-01\"\n",
		},
		{
			name:    "newer version",
			input:   "version: 2\nexported_on: \"2025-02-01\"\n",
			wantErr: "unsupported snapshot version 2",
		},
		{
			name:    "unknown field",
			input:   "version: 1\nstreaks: []\n",
			wantErr: "field streaks not found",
		},
		{
			name:    "invalid date",
			input:   "version: 1\nexported_on: \"01/02/2025\"\n",
			wantErr: "decoder.Decode()",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadYAML(strings.NewReader(tt.input))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, SnapshotVersion, got.Version)
			assert.Nil(t, got.StartDate)
		})
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "backup.yml")
	require.NoError(t, WriteFile(path, testSnapshot()))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, got.WeeklyGoals, 1)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestExporter_Export(t *testing.T) {
	t.Run("all records", func(t *testing.T) {
		repos, mocks := newMockRepositories(t)
		mocks.settings.EXPECT().Find(gomock.Any(), record.SettingRoadmapStartDate).Return("2025-01-06", true, nil)
		mocks.logs.EXPECT().FindAll(gomock.Any()).Return([]record.DailyLog{
			{Date: calendar.NewDate(2025, 1, 6), Topics: []string{"NumPy", "Pandas"}, Notes: "broadcasting", Confidence: 4},
		}, nil)
		mocks.goals.EXPECT().FindAll(gomock.Any()).Return([]record.WeeklyGoal{
			{ID: "g-1", WeekStart: calendar.NewDate(2025, 1, 6), Text: "Finish NumPy exercises", Done: true},
		}, nil)
		mocks.projects.EXPECT().FindAll(gomock.Any()).Return([]record.Project{
			{ID: "p-1", Name: "Loan Default Prediction", Status: record.ProjectStatusInProgress, RoadmapDay: intPtr(26)},
		}, nil)
		mocks.quizzes.EXPECT().FindAll(gomock.Any()).Return([]record.QuizResult{
			{Date: calendar.NewDate(2025, 1, 7), Score: 12, Total: 15, Topic: "Python + Core Math + NumPy/Pandas"},
		}, nil)
		mocks.assessments.EXPECT().FindAll(gomock.Any()).Return([]record.MonthlyAssessment{
			{Month: "2025-01", Reflection: "good start", Rating: 8},
		}, nil)

		got, err := NewExporter(repos).Export(context.Background(), calendar.NewDate(2025, 2, 1))
		require.NoError(t, err)
		assert.Equal(t, testSnapshot(), got)
	})

	t.Run("uninitialized roadmap", func(t *testing.T) {
		repos, mocks := newMockRepositories(t)
		mocks.settings.EXPECT().Find(gomock.Any(), record.SettingRoadmapStartDate).Return("", false, nil)
		mocks.logs.EXPECT().FindAll(gomock.Any()).Return(nil, nil)
		mocks.goals.EXPECT().FindAll(gomock.Any()).Return(nil, nil)
		mocks.projects.EXPECT().FindAll(gomock.Any()).Return(nil, nil)
		mocks.quizzes.EXPECT().FindAll(gomock.Any()).Return(nil, nil)
		mocks.assessments.EXPECT().FindAll(gomock.Any()).Return(nil, nil)

		got, err := NewExporter(repos).Export(context.Background(), calendar.NewDate(2025, 2, 1))
		require.NoError(t, err)
		assert.Nil(t, got.StartDate)
		assert.Empty(t, got.DailyLogs)
	})

	t.Run("storage failure", func(t *testing.T) {
		repos, mocks := newMockRepositories(t)
		mocks.settings.EXPECT().Find(gomock.Any(), record.SettingRoadmapStartDate).Return("", false, nil)
		mocks.logs.EXPECT().FindAll(gomock.Any()).Return(nil, record.ErrStorageFailure)

		_, err := NewExporter(repos).Export(context.Background(), calendar.NewDate(2025, 2, 1))
		assert.ErrorIs(t, err, record.ErrStorageFailure)
	})
}

func TestImporter_Import(t *testing.T) {
	tests := []struct {
		name       string
		snapshot   func() *Snapshot
		opts       ImportOptions
		setup      func(m mockRepositories)
		want       *ImportResult
		wantOutput []string
	}{
		{
			name:     "empty database",
			snapshot: testSnapshot,
			setup: func(m mockRepositories) {
				m.settings.EXPECT().Find(gomock.Any(), record.SettingRoadmapStartDate).Return("", false, nil)
				m.settings.EXPECT().Upsert(gomock.Any(), record.SettingRoadmapStartDate, "2025-01-06").Return(nil)
				m.logs.EXPECT().FindByDate(gomock.Any(), gomock.Any()).Return(nil, nil)
				m.logs.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, log *record.DailyLog) error {
					assert.Equal(t, []string{"NumPy", "Pandas"}, log.Topics)
					return nil
				})
				m.goals.EXPECT().FindByID(gomock.Any(), "g-1").Return(nil, nil)
				m.goals.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
				m.projects.EXPECT().FindByID(gomock.Any(), "p-1").Return(nil, nil)
				m.projects.EXPECT().FindByRoadmapDay(gomock.Any(), 26).Return(nil, nil)
				m.projects.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)
				m.quizzes.EXPECT().CreateIfAbsent(gomock.Any(), gomock.Any()).Return(true, nil)
				m.assessments.EXPECT().FindAll(gomock.Any()).Return(nil, nil)
				m.assessments.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)
			},
			want: &ImportResult{
				Settings:    Counts{New: 1},
				DailyLogs:   Counts{New: 1},
				WeeklyGoals: Counts{New: 1},
				Projects:    Counts{New: 1},
				Quizzes:     Counts{New: 1},
				Assessments: Counts{New: 1},
			},
			wantOutput: []string{
				"[NEW]  roadmap start date 2025-01-06",
				"[NEW]  daily log 2025-01-06",
				"[NEW]  goal \"Finish NumPy exercises\"",
				"[NEW]  quiz result 2025-01-07",
			},
		},
		{
			name:     "everything already imported",
			snapshot: testSnapshot,
			setup: func(m mockRepositories) {
				m.settings.EXPECT().Find(gomock.Any(), record.SettingRoadmapStartDate).Return("2025-01-06", true, nil)
				m.logs.EXPECT().FindByDate(gomock.Any(), gomock.Any()).Return(&record.DailyLog{Confidence: 4}, nil)
				m.goals.EXPECT().FindByID(gomock.Any(), "g-1").Return(&record.WeeklyGoal{ID: "g-1", Done: true}, nil)
				m.projects.EXPECT().FindByID(gomock.Any(), "p-1").Return(&record.Project{ID: "p-1"}, nil)
				m.quizzes.EXPECT().CreateIfAbsent(gomock.Any(), gomock.Any()).Return(false, nil)
				m.assessments.EXPECT().FindAll(gomock.Any()).Return([]record.MonthlyAssessment{{Month: "2025-01", Rating: 8}}, nil)
			},
			want: &ImportResult{
				Settings:    Counts{Skipped: 1},
				DailyLogs:   Counts{Skipped: 1},
				WeeklyGoals: Counts{Skipped: 1},
				Projects:    Counts{Skipped: 1},
				Quizzes:     Counts{Skipped: 1},
				Assessments: Counts{Skipped: 1},
			},
		},
		{
			name:     "update existing records",
			snapshot: testSnapshot,
			opts:     ImportOptions{UpdateExisting: true},
			setup: func(m mockRepositories) {
				m.settings.EXPECT().Find(gomock.Any(), record.SettingRoadmapStartDate).Return("2025-01-13", true, nil)
				m.settings.EXPECT().Upsert(gomock.Any(), record.SettingRoadmapStartDate, "2025-01-06").Return(nil)
				m.logs.EXPECT().FindByDate(gomock.Any(), gomock.Any()).Return(&record.DailyLog{Confidence: 2}, nil)
				m.logs.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)
				m.goals.EXPECT().FindByID(gomock.Any(), "g-1").Return(&record.WeeklyGoal{ID: "g-1"}, nil)
				m.goals.EXPECT().SetDone(gomock.Any(), "g-1", true).Return(nil)
				m.projects.EXPECT().FindByID(gomock.Any(), "p-1").Return(&record.Project{ID: "p-1", Status: record.ProjectStatusNotStarted, RoadmapDay: intPtr(26)}, nil)
				m.projects.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)
				m.quizzes.EXPECT().CreateIfAbsent(gomock.Any(), gomock.Any()).Return(false, nil)
				m.assessments.EXPECT().FindAll(gomock.Any()).Return([]record.MonthlyAssessment{{Month: "2025-01", Rating: 3}}, nil)
				m.assessments.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)
			},
			want: &ImportResult{
				Settings:    Counts{Updated: 1},
				DailyLogs:   Counts{Updated: 1},
				WeeklyGoals: Counts{Updated: 1},
				Projects:    Counts{Updated: 1},
				Quizzes:     Counts{Skipped: 1},
				Assessments: Counts{Updated: 1},
			},
			wantOutput: []string{
				"[UPDATE]  roadmap start date 2025-01-06",
				"[UPDATE]  project \"Loan Default Prediction\"",
			},
		},
		{
			name:     "different start date is kept without update",
			snapshot: func() *Snapshot {
				start := calendar.NewDate(2025, 1, 6)
				return &Snapshot{StartDate: &start}
			},
			setup: func(m mockRepositories) {
				m.settings.EXPECT().Find(gomock.Any(), record.SettingRoadmapStartDate).Return("2025-01-13", true, nil)
			},
			want:       &ImportResult{Settings: Counts{Skipped: 1}},
			wantOutput: []string{"[SKIP]  roadmap start date 2025-01-06 (keeping 2025-01-13)"},
		},
		{
			name: "saved roadmap project keeps its day",
			snapshot: func() *Snapshot {
				return &Snapshot{Projects: []ProjectEntry{
					{ID: "p-1", Name: "Loan Default Prediction", Status: record.ProjectStatusDone},
				}}
			},
			opts: ImportOptions{UpdateExisting: true},
			setup: func(m mockRepositories) {
				m.projects.EXPECT().FindByID(gomock.Any(), "p-1").Return(&record.Project{ID: "p-1", Status: record.ProjectStatusInProgress, RoadmapDay: intPtr(26)}, nil)
				m.projects.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, project *record.Project) error {
					require.NotNil(t, project.RoadmapDay)
					assert.Equal(t, 26, *project.RoadmapDay)
					assert.Equal(t, record.ProjectStatusDone, project.Status)
					return nil
				})
			},
			want:       &ImportResult{Projects: Counts{Updated: 1}},
			wantOutput: []string{"[UPDATE]  project \"Loan Default Prediction\""},
		},
		{
			name: "saved roadmap project is not moved to another day",
			snapshot: func() *Snapshot {
				return &Snapshot{Projects: []ProjectEntry{
					{ID: "p-1", Name: "Loan Default Prediction", Status: record.ProjectStatusDone, RoadmapDay: intPtr(40)},
				}}
			},
			opts: ImportOptions{UpdateExisting: true},
			setup: func(m mockRepositories) {
				m.projects.EXPECT().FindByID(gomock.Any(), "p-1").Return(&record.Project{ID: "p-1", Status: record.ProjectStatusInProgress, RoadmapDay: intPtr(26)}, nil)
			},
			want:       &ImportResult{Warnings: 1},
			wantOutput: []string{"[WARN]  project \"Loan Default Prediction\": cannot move from day 26 to day 40"},
		},
		{
			name: "dry run writes nothing",
			snapshot: func() *Snapshot {
				snapshot := testSnapshot()
				snapshot.StartDate = nil
				snapshot.Assessments = nil
				return snapshot
			},
			opts: ImportOptions{DryRun: true},
			setup: func(m mockRepositories) {
				m.logs.EXPECT().FindByDate(gomock.Any(), gomock.Any()).Return(nil, nil)
				m.goals.EXPECT().FindByID(gomock.Any(), "g-1").Return(nil, nil)
				m.projects.EXPECT().FindByID(gomock.Any(), "p-1").Return(nil, nil)
				m.projects.EXPECT().FindByRoadmapDay(gomock.Any(), 26).Return(nil, nil)
				m.quizzes.EXPECT().FindByDate(gomock.Any(), gomock.Any()).Return(&record.QuizResult{Score: 3}, nil)
			},
			want: &ImportResult{
				DailyLogs:   Counts{New: 1},
				WeeklyGoals: Counts{New: 1},
				Projects:    Counts{New: 1},
				Quizzes:     Counts{Skipped: 1},
			},
		},
		{
			name: "invalid records are warned about",
			snapshot: func() *Snapshot {
				return &Snapshot{
					DailyLogs: []DailyLogEntry{{Date: calendar.NewDate(2025, 1, 6), Confidence: 9}},
					Projects: []ProjectEntry{
						{ID: "p-1", Name: "Derived", Status: record.ProjectStatusMissing},
						{ID: "p-2", Name: "Duplicate day", Status: record.ProjectStatusDone, RoadmapDay: intPtr(26)},
					},
					Assessments: []AssessmentEntry{{Month: "January", Rating: 5}},
				}
			},
			setup: func(m mockRepositories) {
				m.projects.EXPECT().FindByID(gomock.Any(), "p-2").Return(nil, nil)
				m.projects.EXPECT().FindByRoadmapDay(gomock.Any(), 26).Return(&record.Project{ID: "p-9"}, nil)
				m.assessments.EXPECT().FindAll(gomock.Any()).Return(nil, nil)
			},
			want: &ImportResult{Warnings: 4},
			wantOutput: []string{
				"[WARN]  daily log 2025-01-06",
				"[WARN]  project \"Derived\" has status \"missing\"",
				"[WARN]  project \"Duplicate day\": day 26 already has project p-9",
				"[WARN]  assessment January",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos, mocks := newMockRepositories(t)
			tt.setup(mocks)

			var output bytes.Buffer
			got, err := NewImporter(repos, &output).Import(context.Background(), tt.snapshot(), tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			for _, want := range tt.wantOutput {
				assert.Contains(t, output.String(), want)
			}
		})
	}
}

func TestImporter_Import_StorageFailure(t *testing.T) {
	repos, mocks := newMockRepositories(t)
	mocks.logs.EXPECT().FindByDate(gomock.Any(), gomock.Any()).Return(nil, errors.Join(record.ErrStorageFailure, errors.New("connection reset")))

	snapshot := &Snapshot{DailyLogs: []DailyLogEntry{{Date: calendar.NewDate(2025, 1, 6), Confidence: 3}}}
	_, err := NewImporter(repos, &bytes.Buffer{}).Import(context.Background(), snapshot, ImportOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, record.ErrStorageFailure)
	assert.Contains(t, err.Error(), "importDailyLogs() > logs.FindByDate(2025-01-06)")
}

func TestImporter_Import_KeepsSavedRoadmapProject(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t, t.TempDir())
	repos := tracker.Repositories{
		Logs:        record.NewDBLogRepository(db),
		Goals:       record.NewDBGoalRepository(db),
		Projects:    record.NewDBProjectRepository(db),
		Quizzes:     record.NewDBQuizRepository(db),
		Settings:    record.NewDBSettingRepository(db),
		Assessments: record.NewDBAssessmentRepository(db),
	}
	catalog, err := roadmap.Default()
	require.NoError(t, err)
	service := tracker.NewService(repos, catalog)

	anchor := calendar.NewDate(2025, 1, 6)
	_, err = service.Initialize(ctx, anchor)
	require.NoError(t, err)
	saved, err := service.SetRoadmapProjectStatus(ctx, 26, record.ProjectStatusInProgress)
	require.NoError(t, err)

	snapshot := &Snapshot{Projects: []ProjectEntry{
		{ID: saved.ID, Name: saved.Name, Status: record.ProjectStatusInProgress},
	}}
	result, err := NewImporter(repos, &bytes.Buffer{}).Import(ctx, snapshot, ImportOptions{UpdateExisting: true})
	require.NoError(t, err)
	assert.Equal(t, Counts{Updated: 1}, result.Projects)

	views, err := service.Projects(ctx, anchor.AddDays(46))
	require.NoError(t, err)
	var found bool
	for _, view := range views {
		if view.RoadmapDay != 26 {
			continue
		}
		found = true
		assert.Equal(t, record.ProjectStatusInProgress, view.Status)
		require.NotNil(t, view.Record)
		assert.Equal(t, saved.ID, view.Record.ID)
	}
	assert.True(t, found)
}
