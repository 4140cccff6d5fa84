// Package models defines the domain entity and persistence interface for the singme recommendation service.
//
//   - [Recommendation] : a named video link carrying a mutable score
//   - [RecommendationRepository] : storage operations the service layer relies on
//   - [Criteria] : filtering, ordering and limiting for [RecommendationRepository.Find]
//
// Repository implementations live in internal/repositories and report missing rows with [ErrNotFound]
// and name collisions with [ErrDuplicateName].
package models
