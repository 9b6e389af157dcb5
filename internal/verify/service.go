// Package verify looks credentials up on the contract by token ID or
// holder address and resolves their metadata.
package verify

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	"minet/internal/chain/contract"
	"minet/internal/platform/metrics"
	"minet/internal/verify/tracer"
	domainerrors "minet/pkg/domain-errors"
	"minet/pkg/web3"
)

// Search types accepted by the lookup endpoint.
const (
	SearchByTokenID = "tokenId"
	SearchByAddress = "address"
	SearchByTxHash  = "txHash"
)

// ContractReader is the contract surface the verification flow needs.
type ContractReader interface {
	Address() string
	OwnerOf(ctx context.Context, tokenID *big.Int) (string, error)
	BalanceOf(ctx context.Context, owner string) (*big.Int, error)
	TokenURI(ctx context.Context, tokenID *big.Int) (string, error)
	TokenByIndex(ctx context.Context, index *big.Int) (*big.Int, error)
}

// TokenCredential is one verified credential.
type TokenCredential struct {
	TokenID     string         `json:"tokenId"`
	Owner       string         `json:"owner"`
	MetadataURI string         `json:"metadataUri"`
	Metadata    map[string]any `json:"metadata"`
	Claims      *ClaimStatus   `json:"claims,omitempty"`
}

// AddressResult reports all credentials held by one address.
type AddressResult struct {
	Owner       string            `json:"owner"`
	Balance     int               `json:"balance"`
	Credentials []TokenCredential `json:"credentials,omitempty"`
	Message     string            `json:"message"`
}

// Service performs credential lookups.
type Service struct {
	reader  ContractReader
	fetcher *MetadataFetcher
	metrics *metrics.Metrics
	tracer  tracer.Tracer
	logger  *slog.Logger
}

// NewService builds a verification service. reader may be nil when no
// contract address is configured; every lookup then fails explicitly.
func NewService(reader ContractReader, fetcher *MetadataFetcher, m *metrics.Metrics, tr tracer.Tracer, logger *slog.Logger) *Service {
	return &Service{
		reader:  reader,
		fetcher: fetcher,
		metrics: m,
		tracer:  tr,
		logger:  logger,
	}
}

// Verify resolves a query by search type. The result is either a
// TokenCredential or an AddressResult.
func (s *Service) Verify(ctx context.Context, query, searchType string) (any, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanVerifyLookup,
		tracer.String(tracer.AttrSearchType, searchType))

	result, err := s.verify(ctx, query, searchType)
	span.End(err)

	s.metrics.IncrementVerifyLookups(searchType)
	if err != nil {
		s.metrics.IncrementVerifyFailures(searchType)
	}
	return result, err
}

func (s *Service) verify(ctx context.Context, query, searchType string) (any, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domainerrors.New(domainerrors.CodeBadRequest, "Query required")
	}
	if s.reader == nil || s.reader.Address() == "" || s.reader.Address() == "0x" {
		return nil, domainerrors.New(domainerrors.CodeInternal, "Contract not configured")
	}

	switch searchType {
	case SearchByTokenID:
		return s.lookupToken(ctx, query)
	case SearchByAddress:
		return s.lookupAddress(ctx, query)
	default:
		// Transaction hash lookups need an indexer the chain endpoint does
		// not provide, so they fall through with the other unknown types.
		return nil, domainerrors.New(domainerrors.CodeNotFound, "Credential not found")
	}
}

func (s *Service) lookupToken(ctx context.Context, query string) (any, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanVerifyToken,
		tracer.String(tracer.AttrTokenID, query))

	result, err := s.lookupTokenInner(ctx, query)
	span.End(err)
	return result, err
}

func (s *Service) lookupTokenInner(ctx context.Context, query string) (any, error) {
	tokenID, ok := new(big.Int).SetString(query, 10)
	if !ok {
		return nil, domainerrors.New(domainerrors.CodeInvalidInput, "Invalid token ID format")
	}

	owner, err := s.reader.OwnerOf(ctx, tokenID)
	if err != nil {
		return nil, tokenLookupError(err)
	}

	uri, err := s.reader.TokenURI(ctx, tokenID)
	if err != nil {
		return nil, tokenLookupError(err)
	}

	cred := TokenCredential{
		TokenID:     tokenID.String(),
		Owner:       owner,
		MetadataURI: uri,
	}

	metadata, err := s.fetcher.Fetch(ctx, uri)
	if err != nil {
		// Metadata is best effort; the on-chain facts stand on their own.
		s.logger.Warn("metadata fetch failed", "token_id", cred.TokenID, "error", err)
	} else {
		cred.Metadata = metadata
		claims := DeriveClaimStatus(metadata)
		cred.Claims = &claims
	}

	return cred, nil
}

func tokenLookupError(err error) error {
	msg := err.Error()
	switch {
	case contract.IsRevert(err) || strings.Contains(msg, "not found"):
		return domainerrors.New(domainerrors.CodeNotFound, "Token ID does not exist on the contract")
	case strings.Contains(msg, "invalid"):
		return domainerrors.New(domainerrors.CodeInvalidInput, "Invalid token ID format")
	default:
		return domainerrors.Wrap(err, domainerrors.CodeInternal,
			fmt.Sprintf("Token lookup failed: %s", msg))
	}
}

func (s *Service) lookupAddress(ctx context.Context, address string) (any, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanVerifyAddress)

	result, err := s.lookupAddressInner(ctx, address)
	if ar, ok := result.(AddressResult); ok {
		span.SetAttributes(tracer.Int64(tracer.AttrBalance, int64(ar.Balance)))
	}
	span.End(err)
	return result, err
}

func (s *Service) lookupAddressInner(ctx context.Context, address string) (any, error) {
	if !web3.IsValidAddress(address) {
		return nil, domainerrors.New(domainerrors.CodeInvalidInput, "Invalid wallet address")
	}

	balance, err := s.reader.BalanceOf(ctx, address)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal,
			fmt.Sprintf("Failed to lookup address: %s", err.Error()))
	}

	balanceNum := int(balance.Int64())
	if balanceNum == 0 {
		return nil, domainerrors.New(domainerrors.CodeNotFound, "No credentials found for this address")
	}

	// The contract only exposes global enumeration, so this walks the
	// first balance-many token slots; tokens that error are skipped.
	var credentials []TokenCredential
	for i := 0; i < balanceNum; i++ {
		tokenID, err := s.reader.TokenByIndex(ctx, big.NewInt(int64(i)))
		if err != nil {
			s.logger.Debug("token enumeration skipped a slot", "index", i, "error", err)
			continue
		}

		uri, err := s.reader.TokenURI(ctx, tokenID)
		if err != nil {
			s.logger.Debug("token enumeration skipped a token", "token_id", tokenID.String(), "error", err)
			continue
		}

		cred := TokenCredential{
			TokenID:     tokenID.String(),
			Owner:       address,
			MetadataURI: uri,
		}
		if metadata, err := s.fetcher.Fetch(ctx, uri); err == nil {
			cred.Metadata = metadata
		}
		credentials = append(credentials, cred)
	}

	return AddressResult{
		Owner:       address,
		Balance:     balanceNum,
		Credentials: credentials,
		Message:     fmt.Sprintf("Address owns %d credential(s)", balanceNum),
	}, nil
}
