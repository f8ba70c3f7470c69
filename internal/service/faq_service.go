package service

import (
	"fmt"
	"log/slog"
	"time"

	"faqbot/internal/config"
	"faqbot/internal/domain"
	"faqbot/internal/matcher"
)

// FAQService answers questions from a fixed question bank.
type FAQService struct {
	matcher *matcher.Matcher
	corpus  domain.Corpus
	index   *matcher.Index
	mode    string
	logger  *slog.Logger
}

// NewFAQService wires the matcher to a corpus. In cached mode the vector
// space is fitted here, once; in rebuild mode every Ask refits it.
func NewFAQService(m *matcher.Matcher, corpus domain.Corpus, mode string, logger *slog.Logger) (*FAQService, error) {
	s := &FAQService{
		matcher: m,
		corpus:  corpus,
		mode:    mode,
		logger:  logger.With("component", "faq.service"),
	}
	switch mode {
	case config.ModeRebuild:
	case config.ModeCached:
		start := time.Now()
		s.index = m.NewIndex(corpus)
		if err := s.index.Err(); err != nil {
			s.logger.Warn("faq index fit failed; every query will fall back", "error", err)
		}
		s.logger.Info("faq index fitted", "entries", s.index.Len(), "elapsed", time.Since(start))
	default:
		return nil, fmt.Errorf("unknown matcher mode %q", mode)
	}
	if len(corpus) == 0 {
		s.logger.Warn("faq corpus is empty")
	}
	return s, nil
}

// Ask returns the best answer for question.
func (s *FAQService) Ask(question string) domain.MatchResult {
	start := time.Now()
	var res domain.MatchResult
	if s.index != nil {
		res = s.index.Match(question)
	} else {
		res = s.matcher.FindBestMatch(question, s.corpus)
	}
	s.logger.Debug("faq query",
		"resolved", res.Resolved,
		"index", res.Index,
		"confidence", res.Confidence,
		"mode", s.mode,
		"elapsed", time.Since(start),
	)
	return res
}

// Size reports the number of entries in the question bank.
func (s *FAQService) Size() int { return len(s.corpus) }
