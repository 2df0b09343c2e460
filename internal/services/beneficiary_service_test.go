package services

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grants-governance/internal/ipfs"
	"grants-governance/internal/models"
)

func newRegistryFixture(n int) (*fakeRegistry, *fakeContent) {
	registry := &fakeRegistry{digests: map[common.Address][32]byte{}}
	content := &fakeContent{docs: map[string]models.BeneficiaryApplication{}}
	for i := 1; i <= n; i++ {
		addr := addressFor(byte(i))
		registry.list = append(registry.list, addr)
		registry.digests[addr] = digestFor(byte(i))
		content.docs[ipfs.CIDFromBytes32(digestFor(byte(i)))] = docFor(byte(i))
	}
	return registry, content
}

func TestGetBeneficiaryApplicationStampsAddress(t *testing.T) {
	registry, content := newRegistryFixture(2)
	service := NewBeneficiaryService(registry, content, 2, nil)

	app, err := service.GetBeneficiaryApplication(context.Background(), addressFor(2))
	require.NoError(t, err)
	assert.Equal(t, "Org 2", app.OrganizationName)
	assert.Equal(t, addressFor(2).Hex(), app.BeneficiaryAddress)
}

func TestGetBeneficiaryApplicationNotRegistered(t *testing.T) {
	registry, content := newRegistryFixture(1)

	_, err := NewBeneficiaryService(registry, content, 2, nil).GetBeneficiaryApplication(context.Background(), addressFor(9))
	assert.ErrorIs(t, err, ErrBeneficiaryNotFound)
	assert.Empty(t, content.requested)
}

func TestGetAllBeneficiaryApplicationsStampsOwnAddress(t *testing.T) {
	registry, content := newRegistryFixture(3)

	apps, err := NewBeneficiaryService(registry, content, 2, nil).GetAllBeneficiaryApplications(context.Background())
	require.NoError(t, err)
	require.Len(t, apps, 3)

	for i, app := range apps {
		n := byte(i + 1)
		assert.Equal(t, addressFor(n).Hex(), app.BeneficiaryAddress)
		assert.Equal(t, docFor(n).OrganizationName, app.OrganizationName)
	}
}

func TestGetAllBeneficiaryApplicationsFailsWholeBatch(t *testing.T) {
	registry, content := newRegistryFixture(3)
	delete(content.docs, ipfs.CIDFromBytes32(digestFor(2)))

	apps, err := NewBeneficiaryService(registry, content, 2, nil).GetAllBeneficiaryApplications(context.Background())
	assert.ErrorIs(t, err, ipfs.ErrUnexpectedStatus)
	assert.Nil(t, apps)
}

func TestCountBeneficiaries(t *testing.T) {
	registry, content := newRegistryFixture(4)

	n, err := NewBeneficiaryService(registry, content, 2, nil).CountBeneficiaries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}
