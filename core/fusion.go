// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

// FuseScores combines per-modality project scores into a final score.
//
// Under ContentTypeAll the final score is the best of the two modalities
// rather than an average: a creator should not be penalized for excelling in
// one modality only. Single-modality specialists (a photographer with no
// videos) are the dominant case, and averaging would wrongly punish them.
// An absent modality contributes 0 and never lowers a present one.
func FuseScores(ct ContentType, vectorScore, videoScore float32) float32 {
	switch ct {
	case ContentTypeImages:
		return clampScore(vectorScore)
	case ContentTypeVideos:
		return clampScore(videoScore)
	default:
		return clampScore(max(vectorScore, videoScore))
	}
}

// Fuse recomputes the FinalScore from the constituent modality scores.
func (p *ProjectScore) Fuse(ct ContentType) {
	p.FinalScore = FuseScores(ct, p.VectorScore, p.VideoScore)
}

// clampScore keeps scores in the [0, 1] range expected of cosine similarity
// over unit vectors. Final scores are never negative.
func clampScore(s float32) float32 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}
