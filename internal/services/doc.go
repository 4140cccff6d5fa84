// Package services implements the recommendation domain rules on top of a [models.RecommendationRepository].
//
// # Recommendation Service
//
// [RecommendationService] enforces name uniqueness on insert, applies votes, deletes
// recommendations whose score falls below [DeleteThreshold] and selects recommendations
// by recency, score or weighted chance.
//
// Weighted random selection draws from the high tier (score above [TierThreshold]) with
// probability [HighTierProbability] and from the low tier otherwise. An empty tier falls
// back to every recommendation. Randomness comes from an injected [RandomSource].
//
// # Scenario Service
//
// [ScenarioService] seeds and clears data for the admin routes.
//
// # Error Handling
//
// Domain failures are returned as [*AppError] with a [ErrorType]:
//   - [TypeConflict] : a recommendation with the same name exists
//   - [TypeNotFound] : no recommendation matched the id, or the store is empty
//
// Any other error comes from storage and is wrapped with context.
//
// Votes are read-modify-write over two storage calls. Concurrent votes on the same
// recommendation may interleave; the threshold check uses the score returned by the update.
package services
