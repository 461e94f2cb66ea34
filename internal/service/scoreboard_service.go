package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/openjudge-io/judge-api/internal/dto"
	"github.com/openjudge-io/judge-api/internal/observability"
	"github.com/openjudge-io/judge-api/internal/repository"
	"github.com/openjudge-io/judge-api/internal/utils"
)

// TODO: replace with the per-problem full score once problem configs carry
// one; every problem currently reports the same provisional maximum.
const provisionalFullScore = 1000

// ScoreboardService computes ranked per-user aggregations over a problem
// set's submission records.
type ScoreboardService interface {
	Get(ctx context.Context, domainID uint, problemSetRef string) (dto.ScoreboardResponse, error)
}

type scoreboardService struct {
	sets     repository.ProblemSetRepository
	problems repository.ProblemRepository
	records  repository.RecordRepository
	domains  repository.DomainRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
	now      func() time.Time
}

// NewScoreboardService builds the scoreboard aggregator. The cache client may
// be nil, in which case every request recomputes.
func NewScoreboardService(sets repository.ProblemSetRepository, problems repository.ProblemRepository, records repository.RecordRepository, domains repository.DomainRepository, cache *redis.Client, cacheTTL time.Duration, logger zerolog.Logger) ScoreboardService {
	return &scoreboardService{
		sets:     sets,
		problems: problems,
		records:  records,
		domains:  domains,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger.With().Str("component", "scoreboard_service").Logger(),
		now:      time.Now,
	}
}

func (s *scoreboardService) Get(ctx context.Context, domainID uint, problemSetRef string) (dto.ScoreboardResponse, error) {
	set, err := s.sets.GetByRef(ctx, domainID, problemSetRef)
	if err != nil {
		return dto.ScoreboardResponse{}, mapNotFound(err)
	}

	// The hidden check comes before any record access; a hidden scoreboard
	// must not cost a single record query.
	if set.ScoreboardHidden {
		return dto.ScoreboardResponse{}, utils.NewBizError(utils.CodeScoreboardHidden, "scoreboard is hidden")
	}

	cacheKey := fmt.Sprintf("scoreboard:domain:%d:problem_set:%d", domainID, set.ID)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.ScoreboardResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Uint("problem_set_id", set.ID).Msg("scoreboard cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read scoreboard cache")
		}
	}

	started := s.now()

	members, err := s.domains.ListMembers(ctx, domainID)
	if err != nil {
		return dto.ScoreboardResponse{}, err
	}

	problems, err := s.problems.ListByProblemSet(ctx, set.ID)
	if err != nil {
		return dto.ScoreboardResponse{}, err
	}

	problemIDs := make([]uint, 0, len(problems))
	for _, problem := range problems {
		problemIDs = append(problemIDs, problem.ID)
	}

	now := s.now().UTC()
	epoch := time.Unix(0, 0).UTC()
	results := make([]dto.UserScore, 0, len(members))

	for _, member := range members {
		scores := make([]dto.Score, 0, len(problems))
		var totalScore int64
		var totalTimeSpent time.Duration

		for _, problem := range problems {
			record, tried, err := s.records.LatestTried(ctx, member.UserID, problem.ID, set.AvailableTime)
			if err != nil {
				return dto.ScoreboardResponse{}, err
			}

			score := dto.Score{
				Score:     0,
				Time:      epoch,
				FullScore: provisionalFullScore,
				TimeSpent: now.Sub(set.AvailableTime),
				Tried:     tried,
			}
			if tried {
				score.Score = record.Score
				score.Time = record.SubmitAt
				score.TimeSpent = record.SubmitAt.Sub(set.AvailableTime)
			}

			totalScore += score.Score
			totalTimeSpent += score.TimeSpent
			scores = append(scores, score)
		}

		results = append(results, dto.UserScore{
			User:           dto.NewUserResponse(member.User),
			TotalScore:     totalScore,
			TotalTimeSpent: totalTimeSpent,
			Scores:         scores,
		})
	}

	// Ranking ascends by (total score, total time spent); see the ranking
	// note in DESIGN.md before changing this.
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].TotalScore != results[j].TotalScore {
			return results[i].TotalScore < results[j].TotalScore
		}
		return results[i].TotalTimeSpent < results[j].TotalTimeSpent
	})

	response := dto.ScoreboardResponse{Results: results, ProblemIDs: problemIDs}

	observability.ScoreboardDuration().Observe(s.now().Sub(started).Seconds())

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store scoreboard cache")
			}
		}
	}

	return response, nil
}
