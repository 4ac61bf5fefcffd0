package profilescan_test

import (
	"testing"

	"github.com/fwojciec/profilescan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentifyPlatform(t *testing.T) {
	t.Parallel()

	t.Run("identifies every supported platform from its domain", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			url  string
			want profilescan.Platform
		}{
			{"https://www.fiverr.com/username/some-gig", profilescan.PlatformFiverr},
			{"https://fiverr.com/seller", profilescan.PlatformFiverr},
			{"https://www.upwork.com/freelancers/~01abc", profilescan.PlatformUpwork},
			{"https://www.linkedin.com/in/jane-doe", profilescan.PlatformLinkedIn},
			{"https://uk.linkedin.com/in/jane-doe", profilescan.PlatformLinkedIn},
			{"https://www.freelancer.com/u/janedoe", profilescan.PlatformFreelancer},
			{"http://WWW.FREELANCER.COM/u/janedoe", profilescan.PlatformFreelancer},
		}
		for _, tt := range tests {
			got, err := profilescan.IdentifyPlatform(tt.url)
			require.NoError(t, err, tt.url)
			assert.Equal(t, tt.want, got, tt.url)
		}
	})

	t.Run("rejects unsupported hosts", func(t *testing.T) {
		t.Parallel()

		_, err := profilescan.IdentifyPlatform("https://www.example.com/profile")

		require.Error(t, err)
		assert.Equal(t, profilescan.EUNSUPPORTED, profilescan.ErrorCode(err))
	})

	t.Run("matches the host, not the path", func(t *testing.T) {
		t.Parallel()

		_, err := profilescan.IdentifyPlatform("https://www.example.com/fiverr.com/profile")

		require.Error(t, err)
		assert.Equal(t, profilescan.EUNSUPPORTED, profilescan.ErrorCode(err))
	})

	t.Run("rejects malformed URLs as invalid before matching", func(t *testing.T) {
		t.Parallel()

		for _, raw := range []string{
			"://fiverr.com",
			"fiverr.com/username",
			"ftp://fiverr.com/file",
			"https://",
			"",
		} {
			_, err := profilescan.IdentifyPlatform(raw)
			require.Error(t, err, raw)
			assert.Equal(t, profilescan.EINVALIDURL, profilescan.ErrorCode(err), raw)
		}
	})
}

func TestParsePlatform(t *testing.T) {
	t.Parallel()

	t.Run("is case-insensitive", func(t *testing.T) {
		t.Parallel()

		p, err := profilescan.ParsePlatform(" Upwork ")

		require.NoError(t, err)
		assert.Equal(t, profilescan.PlatformUpwork, p)
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		t.Parallel()

		_, err := profilescan.ParsePlatform("behance")

		require.Error(t, err)
		assert.Equal(t, profilescan.EUNSUPPORTED, profilescan.ErrorCode(err))
	})
}

func TestPlatforms_PriorityOrder(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []profilescan.Platform{
		profilescan.PlatformFiverr,
		profilescan.PlatformUpwork,
		profilescan.PlatformLinkedIn,
		profilescan.PlatformFreelancer,
	}, profilescan.Platforms())
}
