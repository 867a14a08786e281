package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/btbtyler09/FF-Tracker/model"
	"github.com/itbasis/go-clock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrManagerNotFound error = errors.New("manager not found")
	ErrTeamNotFound    error = errors.New("team not found")
	ErrLineNotFound    error = errors.New("weekly line not found")
	ErrGameNotFound    error = errors.New("game not found")
)

func New(ctx context.Context, connString string, clock clock.Clock) (DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	return &postgresDB{pool: pool, clock: clock}, nil
}

type postgresDB struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

func (db *postgresDB) AddManager(ctx context.Context, m *model.Manager) error {
	const query = `INSERT INTO managers(name, draft_position, created)
					VALUES (@name, @pos, @created)
					RETURNING id`

	args := pgx.NamedArgs{
		"name":    m.Name,
		"pos":     m.DraftPosition,
		"created": db.clock.Now().UTC(),
	}
	if err := db.pool.QueryRow(ctx, query, args).Scan(&m.ID); err != nil {
		return fmt.Errorf("error inserting manager %s: %w", m.Name, err)
	}
	return nil
}

func (db *postgresDB) ListManagers(ctx context.Context) ([]model.Manager, error) {
	const query = `SELECT id, name, draft_position, created
					FROM managers ORDER BY draft_position`

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing managers: %w", err)
	}
	defer rows.Close()

	results := make([]model.Manager, 0, 8)
	for rows.Next() {
		var m model.Manager
		if err := rows.Scan(&m.ID, &m.Name, &m.DraftPosition, &m.Created); err != nil {
			return nil, fmt.Errorf("error scanning manager: %w", err)
		}
		results = append(results, m)
	}
	return results, rows.Err()
}

func (db *postgresDB) GetManager(ctx context.Context, id int32) (*model.Manager, error) {
	const query = `SELECT id, name, draft_position, created
					FROM managers WHERE id=@id`

	var m model.Manager
	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id})
	if err := row.Scan(&m.ID, &m.Name, &m.DraftPosition, &m.Created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrManagerNotFound
		}
		return nil, fmt.Errorf("error getting manager %d: %w", id, err)
	}
	return &m, nil
}

func (db *postgresDB) AddTeam(ctx context.Context, t *model.Team) error {
	const query = `INSERT INTO teams(name, league, conference, vegas_total, espn_id, abbreviation, created)
					VALUES (@name, @league, @conference, @vegasTotal, @espnID, @abbr, @created)
					RETURNING id`

	args := pgx.NamedArgs{
		"name":       t.Name,
		"league":     string(t.League),
		"conference": t.Conference,
		"vegasTotal": t.VegasTotal,
		"espnID":     t.ESPNID,
		"abbr":       t.Abbreviation,
		"created":    db.clock.Now().UTC(),
	}
	if err := db.pool.QueryRow(ctx, query, args).Scan(&t.ID); err != nil {
		return fmt.Errorf("error inserting team %s: %w", t.Name, err)
	}
	return nil
}

const teamColumns = `id, name, league, conference, vegas_total, espn_id, abbreviation, created`

func scanTeam(row pgx.Row) (*model.Team, error) {
	var t model.Team
	var league string
	err := row.Scan(&t.ID, &t.Name, &league, &t.Conference, &t.VegasTotal,
		&t.ESPNID, &t.Abbreviation, &t.Created)
	if err != nil {
		return nil, err
	}
	t.League = model.ParseLeague(league)
	return &t, nil
}

func (db *postgresDB) GetTeam(ctx context.Context, id int32) (*model.Team, error) {
	query := fmt.Sprintf(`SELECT %s FROM teams WHERE id=@id`, teamColumns)

	t, err := scanTeam(db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("error getting team %d: %w", id, err)
	}
	return t, nil
}

func (db *postgresDB) GetTeamByName(ctx context.Context, name string) (*model.Team, error) {
	query := fmt.Sprintf(`SELECT %s FROM teams WHERE name=@name`, teamColumns)

	t, err := scanTeam(db.pool.QueryRow(ctx, query, pgx.NamedArgs{"name": name}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("error getting team %s: %w", name, err)
	}
	return t, nil
}

func (db *postgresDB) ListTeams(ctx context.Context) ([]model.Team, error) {
	query := fmt.Sprintf(`SELECT %s FROM teams ORDER BY name`, teamColumns)

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing teams: %w", err)
	}
	defer rows.Close()

	results := make([]model.Team, 0, 80)
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning team: %w", err)
		}
		results = append(results, *t)
	}
	return results, rows.Err()
}

func (db *postgresDB) AddDraftPick(ctx context.Context, p *model.DraftPick) error {
	const query = `INSERT INTO draft_picks(manager_id, team_id, round, pick, created)
					VALUES (@managerID, @teamID, @round, @pick, @created)
					RETURNING id`

	args := pgx.NamedArgs{
		"managerID": p.ManagerID,
		"teamID":    p.TeamID,
		"round":     p.Round,
		"pick":      p.Pick,
		"created":   db.clock.Now().UTC(),
	}
	if err := db.pool.QueryRow(ctx, query, args).Scan(&p.ID); err != nil {
		return fmt.Errorf("error inserting draft pick %d: %w", p.Pick, err)
	}
	return nil
}

func (db *postgresDB) PicksForManager(ctx context.Context, managerID int32) ([]model.DraftPick, error) {
	const query = `SELECT p.id, p.manager_id, p.team_id, p.round, p.pick, p.created,
						t.id, t.name, t.league, t.conference, t.vegas_total, t.espn_id, t.abbreviation, t.created
					FROM draft_picks p JOIN teams t ON p.team_id = t.id
					WHERE p.manager_id=@managerID
					ORDER BY p.pick`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"managerID": managerID})
	if err != nil {
		return nil, fmt.Errorf("error listing picks for manager %d: %w", managerID, err)
	}
	defer rows.Close()

	results := make([]model.DraftPick, 0, 10)
	for rows.Next() {
		var p model.DraftPick
		var t model.Team
		var league string
		err := rows.Scan(&p.ID, &p.ManagerID, &p.TeamID, &p.Round, &p.Pick, &p.Created,
			&t.ID, &t.Name, &league, &t.Conference, &t.VegasTotal, &t.ESPNID, &t.Abbreviation, &t.Created)
		if err != nil {
			return nil, fmt.Errorf("error scanning draft pick: %w", err)
		}
		t.League = model.ParseLeague(league)
		p.Team = &t
		results = append(results, p)
	}
	return results, rows.Err()
}

func (db *postgresDB) WinCount(ctx context.Context, teamID int32, t model.GameType) (int, error) {
	return db.countGames(ctx, teamID, t, "won=true")
}

func (db *postgresDB) LossCount(ctx context.Context, teamID int32, t model.GameType) (int, error) {
	return db.countGames(ctx, teamID, t, "won=false")
}

func (db *postgresDB) GamesPlayed(ctx context.Context, teamID int32, t model.GameType) (int, error) {
	return db.countGames(ctx, teamID, t, "")
}

func (db *postgresDB) countGames(ctx context.Context, teamID int32, t model.GameType, cond string) (int, error) {
	query := `SELECT count(*) FROM games WHERE team_id=@teamID`
	if t != model.GAME_ANY {
		query += ` AND game_type=@gameType`
	}
	if cond != "" {
		query += ` AND ` + cond
	}

	args := pgx.NamedArgs{
		"teamID":   teamID,
		"gameType": string(t),
	}
	var count int
	if err := db.pool.QueryRow(ctx, query, args).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting games for team %d: %w", teamID, err)
	}
	return count, nil
}

func (db *postgresDB) HasGameOfType(ctx context.Context, teamID int32, t model.GameType) (bool, error) {
	const query = `SELECT exists(SELECT 1 FROM games WHERE team_id=@teamID AND game_type=@gameType)`

	args := pgx.NamedArgs{
		"teamID":   teamID,
		"gameType": string(t),
	}
	var found bool
	if err := db.pool.QueryRow(ctx, query, args).Scan(&found); err != nil {
		return false, fmt.Errorf("error checking games for team %d: %w", teamID, err)
	}
	return found, nil
}

func (db *postgresDB) MaxWeek(ctx context.Context, t model.GameType) (int, error) {
	const query = `SELECT coalesce(max(week), 0) FROM games WHERE game_type=@gameType`

	var week int
	if err := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"gameType": string(t)}).Scan(&week); err != nil {
		return 0, fmt.Errorf("error finding max week: %w", err)
	}
	return week, nil
}

func (db *postgresDB) GamesInWeek(ctx context.Context, week int) (int, error) {
	const query = `SELECT count(*) FROM games WHERE week=@week`

	var count int
	if err := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"week": week}).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting games in week %d: %w", week, err)
	}
	return count, nil
}

func (db *postgresDB) GameTotals(ctx context.Context) (int, int, error) {
	const query = `SELECT count(*), count(*) FILTER (WHERE won) FROM games`

	var games, wins int
	if err := db.pool.QueryRow(ctx, query).Scan(&games, &wins); err != nil {
		return 0, 0, fmt.Errorf("error counting game totals: %w", err)
	}
	return games, wins, nil
}

func (db *postgresDB) UpsertGame(ctx context.Context, g *model.Game) error {
	const lookup = `SELECT id, won, score_us, score_them FROM games
					WHERE team_id=@teamID AND espn_game_id=@espnGameID`

	args := pgx.NamedArgs{
		"teamID":     g.TeamID,
		"espnGameID": g.ESPNGameID,
	}

	var id int32
	var won bool
	var scoreUs, scoreThem *int
	err := db.pool.QueryRow(ctx, lookup, args).Scan(&id, &won, &scoreUs, &scoreThem)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return db.insertGame(ctx, g)
		}
		return fmt.Errorf("error reading game at start of UpsertGame(): %w", err)
	}

	// Only write when the result actually changed. The game type is left
	// alone so manually tagged postseason games keep their tag.
	if won == g.Won && eqIntPtr(scoreUs, g.ScoreUs) && eqIntPtr(scoreThem, g.ScoreThem) {
		return nil
	}

	const update = `UPDATE games SET won=@won, score_us=@scoreUs, score_them=@scoreThem, updated=@updated
					WHERE id=@id`

	updateArgs := pgx.NamedArgs{
		"id":        id,
		"won":       g.Won,
		"scoreUs":   g.ScoreUs,
		"scoreThem": g.ScoreThem,
		"updated":   db.clock.Now().UTC(),
	}
	if _, err := db.pool.Exec(ctx, update, updateArgs); err != nil {
		return fmt.Errorf("error updating game %d: %w", id, err)
	}
	return nil
}

func (db *postgresDB) AddGame(ctx context.Context, g *model.Game) error {
	return db.insertGame(ctx, g)
}

func (db *postgresDB) FindGame(ctx context.Context, teamID int32, opponent string, week *int) (*model.Game, error) {
	query := `SELECT id, team_id, week, opponent, won, game_type, espn_game_id
					FROM games WHERE team_id=@teamID AND opponent ILIKE @opponent`
	if week != nil {
		query += ` AND week=@week`
	}
	query += ` ORDER BY id LIMIT 1`

	args := pgx.NamedArgs{
		"teamID":   teamID,
		"opponent": opponent,
		"week":     week,
	}

	var g model.Game
	var gameType string
	row := db.pool.QueryRow(ctx, query, args)
	err := row.Scan(&g.ID, &g.TeamID, &g.Week, &g.Opponent, &g.Won, &gameType, &g.ESPNGameID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("error finding game for team %d vs %s: %w", teamID, opponent, err)
	}
	g.Type = model.ParseGameType(gameType)
	return &g, nil
}

func (db *postgresDB) UpdateGameResult(ctx context.Context, id int32, won bool, t model.GameType) error {
	const query = `UPDATE games SET won=@won, game_type=@gameType, updated=@updated WHERE id=@id`

	args := pgx.NamedArgs{
		"id":       id,
		"won":      won,
		"gameType": string(t),
		"updated":  db.clock.Now().UTC(),
	}
	tag, err := db.pool.Exec(ctx, query, args)
	if err != nil {
		return fmt.Errorf("error updating game %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrGameNotFound
	}
	return nil
}

func (db *postgresDB) insertGame(ctx context.Context, g *model.Game) error {
	const query = `INSERT INTO games(team_id, week, opponent, won, game_type, game_date,
						score_us, score_them, espn_game_id, created, updated)
					VALUES (@teamID, @week, @opponent, @won, @gameType, @gameDate,
						@scoreUs, @scoreThem, @espnGameID, @now, @now)
					RETURNING id`

	args := pgx.NamedArgs{
		"teamID":     g.TeamID,
		"week":       g.Week,
		"opponent":   g.Opponent,
		"won":        g.Won,
		"gameType":   string(g.Type),
		"gameDate":   g.GameDate,
		"scoreUs":    g.ScoreUs,
		"scoreThem":  g.ScoreThem,
		"espnGameID": g.ESPNGameID,
		"now":        db.clock.Now().UTC(),
	}
	if err := db.pool.QueryRow(ctx, query, args).Scan(&g.ID); err != nil {
		return fmt.Errorf("error inserting game for team %d: %w", g.TeamID, err)
	}
	return nil
}

const lineColumns = `id, team_id, week, updated_line, original_line, source, notes, created, updated`

func scanLine(row pgx.Row) (*model.WeeklyLine, error) {
	var l model.WeeklyLine
	err := row.Scan(&l.ID, &l.TeamID, &l.Week, &l.Line, &l.OriginalLine,
		&l.Source, &l.Notes, &l.Created, &l.Updated)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (db *postgresDB) GetWeeklyLine(ctx context.Context, teamID int32, week int) (*model.WeeklyLine, error) {
	query := fmt.Sprintf(`SELECT %s FROM weekly_lines
					WHERE team_id=@teamID AND week=@week
					ORDER BY updated DESC LIMIT 1`, lineColumns)

	args := pgx.NamedArgs{
		"teamID": teamID,
		"week":   week,
	}
	l, err := scanLine(db.pool.QueryRow(ctx, query, args))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLineNotFound
		}
		return nil, fmt.Errorf("error getting weekly line for team %d week %d: %w", teamID, week, err)
	}
	return l, nil
}

func (db *postgresDB) UpsertWeeklyLine(ctx context.Context, line *model.WeeklyLine) error {
	return db.upsertLine(ctx, db.pool, line)
}

func (db *postgresDB) SaveWeeklyLines(ctx context.Context, lines []model.WeeklyLine) error {
	if len(lines) == 0 {
		return nil
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting weekly line transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for i := range lines {
		if err := db.upsertLine(ctx, tx, &lines[i]); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing weekly lines: %w", err)
	}
	return nil
}

// pgxQuerier covers the bits of pgxpool.Pool and pgx.Tx that upsertLine needs,
// so the same upsert runs standalone or inside a batch transaction.
type pgxQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

func (db *postgresDB) upsertLine(ctx context.Context, q pgxQuerier, line *model.WeeklyLine) error {
	// Projected lines get their own row per (team, week) so an automated
	// refresh never overwrites a manual correction, and vice versa.
	lookup := `SELECT id FROM weekly_lines WHERE team_id=@teamID AND week=@week`
	if line.Source == model.SourceProjected {
		lookup += ` AND source=@source`
	}
	lookup += ` ORDER BY updated DESC LIMIT 1`

	args := pgx.NamedArgs{
		"teamID": line.TeamID,
		"week":   line.Week,
		"source": line.Source,
	}

	now := db.clock.Now().UTC()

	var id int32
	err := q.QueryRow(ctx, lookup, args).Scan(&id)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("error reading weekly line at start of upsert: %w", err)
		}

		const insert = `INSERT INTO weekly_lines(team_id, week, updated_line, original_line, source, notes, created, updated)
						VALUES (@teamID, @week, @line, @originalLine, @source, @notes, @now, @now)
						RETURNING id`

		insertArgs := pgx.NamedArgs{
			"teamID":       line.TeamID,
			"week":         line.Week,
			"line":         line.Line,
			"originalLine": line.OriginalLine,
			"source":       line.Source,
			"notes":        line.Notes,
			"now":          now,
		}
		if err := q.QueryRow(ctx, insert, insertArgs).Scan(&line.ID); err != nil {
			return fmt.Errorf("error inserting weekly line for team %d: %w", line.TeamID, err)
		}
		line.Created = now
		line.Updated = now
		return nil
	}

	const update = `UPDATE weekly_lines SET updated_line=@line, source=@source, notes=@notes, updated=@now
					WHERE id=@id`

	updateArgs := pgx.NamedArgs{
		"id":     id,
		"line":   line.Line,
		"source": line.Source,
		"notes":  line.Notes,
		"now":    now,
	}
	if _, err := q.Exec(ctx, update, updateArgs); err != nil {
		return fmt.Errorf("error updating weekly line %d: %w", id, err)
	}
	line.ID = id
	line.Updated = now
	return nil
}

func (db *postgresDB) LineHistory(ctx context.Context, teamID int32, fromWeek int) ([]model.WeeklyLine, error) {
	query := fmt.Sprintf(`SELECT %s FROM weekly_lines
					WHERE team_id=@teamID AND week >= @fromWeek
					ORDER BY week DESC, updated DESC`, lineColumns)

	args := pgx.NamedArgs{
		"teamID":   teamID,
		"fromWeek": fromWeek,
	}
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error listing line history for team %d: %w", teamID, err)
	}
	defer rows.Close()

	results := make([]model.WeeklyLine, 0, 8)
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning weekly line: %w", err)
		}
		results = append(results, *l)
	}
	return results, rows.Err()
}

func eqIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
