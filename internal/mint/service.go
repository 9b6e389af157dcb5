// Package mint orchestrates the full credential issuance flow: pin the
// supporting artifacts to IPFS, pin the metadata document, submit the mint
// transaction, and recover the token ID from the mined receipt.
package mint

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"minet/internal/chain/contract"
	"minet/internal/chain/rpc"
	"minet/internal/credential"
	"minet/internal/credential/render"
	"minet/internal/platform/metrics"
	"minet/internal/storage/pinata"
	"minet/internal/wallet"
	domainerrors "minet/pkg/domain-errors"
	"minet/pkg/web3"
)

// Pipeline steps, used to label failure metrics.
const (
	StepUpload   = "upload"
	StepMetadata = "metadata"
	StepMint     = "mint"
	StepReceipt  = "receipt"
)

// Pinner pins artifacts and metadata documents to IPFS.
type Pinner interface {
	PinFile(ctx context.Context, name, contentType string, content io.Reader) (pinata.PinResult, error)
	PinJSON(ctx context.Context, content any) (pinata.PinResult, error)
}

// Minter submits the mint transaction and returns its hash.
type Minter interface {
	Mint(ctx context.Context, to, tokenURI string) (string, error)
}

// ReceiptSource looks up mined transaction receipts.
type ReceiptSource interface {
	TransactionReceipt(ctx context.Context, txHash string) (*rpc.Receipt, error)
}

const (
	defaultReceiptInterval = 2 * time.Second
	defaultReceiptTimeout  = 2 * time.Minute
)

// Service runs the mint pipeline.
type Service struct {
	pinner          Pinner
	minter          Minter
	receipts        ReceiptSource
	contractAddress string
	wallet          *wallet.Connection
	metrics         *metrics.Metrics
	logger          *slog.Logger

	receiptInterval time.Duration
	receiptTimeout  time.Duration
	now             func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithReceiptPolling overrides how often and how long the service polls
// for a mined receipt.
func WithReceiptPolling(interval, timeout time.Duration) Option {
	return func(s *Service) {
		s.receiptInterval = interval
		s.receiptTimeout = timeout
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService builds a mint service.
func NewService(pinner Pinner, minter Minter, receipts ReceiptSource, contractAddress string, conn *wallet.Connection, m *metrics.Metrics, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		pinner:          pinner,
		minter:          minter,
		receipts:        receipts,
		contractAddress: contractAddress,
		wallet:          conn,
		metrics:         m,
		logger:          logger,
		receiptInterval: defaultReceiptInterval,
		receiptTimeout:  defaultReceiptTimeout,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EducationEntry is one schooling record attached to a document credential.
type EducationEntry struct {
	Institution string `json:"institution,omitempty"`
	Program     string `json:"program,omitempty"`
}

// Reference is one professional reference attached to a document credential.
type Reference struct {
	Name    string `json:"name"`
	Company string `json:"company,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// DocumentRequest mints a credential backed by an uploaded document. The
// document travels as a data URL; self-attested claims end up inside the
// metadata's Private Metadata attribute.
type DocumentRequest struct {
	FullName      string           `json:"fullName"`
	Profession    string           `json:"profession"`
	Location      string           `json:"location"`
	Skills        []string         `json:"skills,omitempty"`
	Email         string           `json:"email,omitempty"`
	Phone         string           `json:"phone,omitempty"`
	Education     []EducationEntry `json:"education,omitempty"`
	References    []Reference      `json:"references,omitempty"`
	WalletAddress string           `json:"walletAddress,omitempty"`
	DocumentName  string           `json:"documentName,omitempty"`
	Document      string           `json:"document"`
}

// ResumeRequest mints a credential backed by a rendered credential image.
// PreviewImage carries the rendered PNG as a data URL; PhotoURL may carry
// the profile photo as a data URL, which is pinned alongside the image.
type ResumeRequest struct {
	credential.Data
	PreviewImage  string `json:"previewImage"`
	WalletAddress string `json:"walletAddress,omitempty"`
}

// MintDocument runs the document credential pipeline.
func (s *Service) MintDocument(ctx context.Context, req DocumentRequest) (*credential.MintResult, error) {
	if req.FullName == "" || req.Profession == "" || req.Location == "" {
		return nil, domainerrors.New(domainerrors.CodeValidation,
			"Please fill in all required fields: Full Name, Profession, and Location")
	}
	to, err := s.resolveAccount(req.WalletAddress)
	if err != nil {
		return nil, err
	}
	if req.Document == "" {
		return nil, domainerrors.New(domainerrors.CodeValidation,
			"Please upload a document (PDF, image, or Word)")
	}

	s.metrics.IncrementMintsStarted()
	started := s.now()

	docPin, err := s.pinDataURL(ctx, req.Document, documentName(req), pinata.KindDocument)
	if err != nil {
		s.metrics.IncrementMintsFailed(StepUpload)
		return nil, failWith(err, "Failed to upload document to IPFS")
	}

	private := map[string]any{
		"documentIpfsUrl": docPin.URL,
		"selfAttestedClaims": map[string]any{
			"fullName":   req.FullName,
			"profession": req.Profession,
			"location":   req.Location,
			"skills":     credential.NonEmpty(req.Skills),
			"email":      req.Email,
			"phone":      req.Phone,
			"education":  nonEmptyEducation(req.Education),
		},
		"references":    nonEmptyReferences(req.References),
		"walletAddress": to,
		"mintedAt":      s.now().UTC().Format(time.RFC3339),
	}
	rawPrivate, err := json.Marshal(private)
	if err != nil {
		s.metrics.IncrementMintsFailed(StepMetadata)
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "encode private metadata")
	}

	metadata := credential.Metadata{
		Name:        fmt.Sprintf("%s - OnchainCred", req.FullName),
		Description: fmt.Sprintf("Professional credential for %s, %s", req.FullName, req.Profession),
		Image:       docPin.URL,
		Attributes: []credential.Attribute{
			{TraitType: "Full Name", Value: req.FullName},
			{TraitType: "Profession", Value: req.Profession},
			{TraitType: "Location", Value: req.Location},
			{TraitType: "Wallet Address", Value: to},
			{TraitType: "Credential Status", Value: "Verified"},
			{TraitType: "Private Metadata", Value: string(rawPrivate)},
		},
	}

	result, err := s.pinAndMint(ctx, to, metadata)
	if err != nil {
		return nil, err
	}
	result.DocumentURI = docPin.IPFSURI

	s.metrics.IncrementMintsSucceeded()
	s.metrics.ObserveMintDuration(s.now().Sub(started).Seconds())
	s.logger.InfoContext(ctx, "document credential minted",
		"token_id", result.TokenID,
		"tx_hash", result.TransactionHash,
		"owner", to,
	)
	return result, nil
}

// MintResume runs the resume credential pipeline.
func (s *Service) MintResume(ctx context.Context, req ResumeRequest) (*credential.MintResult, error) {
	if req.FullName == "" || req.Profession == "" {
		return nil, domainerrors.New(domainerrors.CodeValidation,
			"Please fill in all required fields (Name and Profession)")
	}
	to, err := s.resolveAccount(req.WalletAddress)
	if err != nil {
		return nil, err
	}
	if req.PreviewImage == "" {
		return nil, domainerrors.New(domainerrors.CodeValidation,
			"Please generate a preview first")
	}

	s.metrics.IncrementMintsStarted()
	started := s.now()

	imageName := slug(req.FullName) + "-credential.png"
	imagePin, err := s.pinDataURL(ctx, req.PreviewImage, imageName, pinata.KindPhoto)
	if err != nil {
		s.metrics.IncrementMintsFailed(StepUpload)
		return nil, failWith(err, "Failed to upload credential image to IPFS")
	}

	photoURL := "none"
	switch {
	case strings.HasPrefix(req.PhotoURL, "data:"):
		photoPin, err := s.pinDataURL(ctx, req.PhotoURL, slug(req.FullName)+"-photo", pinata.KindPhoto)
		if err != nil {
			s.metrics.IncrementMintsFailed(StepUpload)
			return nil, failWith(err, "Failed to upload profile photo to IPFS")
		}
		photoURL = photoPin.URL
	case req.PhotoURL != "":
		photoURL = req.PhotoURL
	}

	template := req.Template
	if template == "" {
		template = render.DefaultTemplate
	}

	metadata := credential.Metadata{
		Name:        fmt.Sprintf("%s - OnchainCred", req.FullName),
		Description: fmt.Sprintf("Professional credential for %s, %s", req.FullName, req.Profession),
		Image:       imagePin.URL,
		Attributes: []credential.Attribute{
			{TraitType: "Full Name", Value: req.FullName},
			{TraitType: "Profession", Value: req.Profession},
			{TraitType: "About Me", Value: req.Summary},
			{TraitType: "Skills", Value: strings.Join(req.Skills, ", ")},
			{TraitType: "Phone", Value: req.Phone},
			{TraitType: "Email", Value: req.Email},
			{TraitType: "Location", Value: req.Location},
			{TraitType: "Education", Value: req.Education},
			{TraitType: "Experience", Value: req.Experience},
			{TraitType: "References", Value: req.References},
			{TraitType: "Photo", Value: photoURL},
			{TraitType: "Template", Value: template},
		},
	}

	result, err := s.pinAndMint(ctx, to, metadata)
	if err != nil {
		return nil, err
	}
	result.ImageURI = imagePin.IPFSURI

	s.metrics.IncrementMintsSucceeded()
	s.metrics.ObserveMintDuration(s.now().Sub(started).Seconds())
	s.logger.InfoContext(ctx, "resume credential minted",
		"token_id", result.TokenID,
		"tx_hash", result.TransactionHash,
		"owner", to,
		"template", template,
	)
	return result, nil
}

// resolveAccount picks the mint recipient: the explicit request address
// wins, otherwise the connected wallet account.
func (s *Service) resolveAccount(requested string) (string, error) {
	to := requested
	if to == "" && s.wallet != nil {
		to = s.wallet.Account()
	}
	if to == "" {
		return "", domainerrors.New(domainerrors.CodeValidation, "Please connect your wallet first")
	}
	if !web3.IsValidAddress(to) {
		return "", domainerrors.New(domainerrors.CodeInvalidInput, "Invalid wallet address")
	}
	return strings.ToLower(to), nil
}

// pinAndMint pins the metadata document, submits the mint, and waits for
// the receipt. There is no rollback: already-pinned artifacts stay pinned
// when a later step fails.
func (s *Service) pinAndMint(ctx context.Context, to string, metadata credential.Metadata) (*credential.MintResult, error) {
	metadataPin, err := s.pinner.PinJSON(ctx, metadata)
	if err != nil {
		s.metrics.IncrementMintsFailed(StepMetadata)
		return nil, failWith(err, "Failed to upload metadata to IPFS")
	}

	txHash, err := s.minter.Mint(ctx, to, metadataPin.IPFSURI)
	if err != nil {
		s.metrics.IncrementMintsFailed(StepMint)
		return nil, failWith(err, "Failed to mint credential on blockchain")
	}

	receipt, err := s.waitForReceipt(ctx, txHash)
	if err != nil {
		s.metrics.IncrementMintsFailed(StepReceipt)
		return nil, failWith(err, "Transaction failed")
	}

	tokenID := "unknown"
	if id := contract.TokenIDFromReceipt(receipt, s.contractAddress); id != nil {
		tokenID = id.String()
	}

	return &credential.MintResult{
		Success:         true,
		TokenID:         tokenID,
		TransactionHash: txHash,
		BlockNumber:     blockNumber(receipt),
		MetadataURI:     metadataPin.IPFSURI,
	}, nil
}

// waitForReceipt polls until the transaction is mined or the timeout
// elapses.
func (s *Service) waitForReceipt(ctx context.Context, txHash string) (*rpc.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, s.receiptTimeout)
	defer cancel()

	ticker := time.NewTicker(s.receiptInterval)
	defer ticker.Stop()

	for {
		receipt, err := s.receipts.TransactionReceipt(ctx, txHash)
		if err != nil {
			s.logger.Debug("receipt lookup failed", "tx_hash", txHash, "error", err)
		} else if receipt != nil {
			if !receipt.Succeeded() {
				return nil, domainerrors.New(domainerrors.CodeCollaboratorFailed,
					fmt.Sprintf("transaction %s reverted", txHash))
			}
			return receipt, nil
		}

		select {
		case <-ctx.Done():
			return nil, domainerrors.Wrap(ctx.Err(), domainerrors.CodeTimeout,
				fmt.Sprintf("timed out waiting for transaction %s", txHash))
		case <-ticker.C:
		}
	}
}

// pinDataURL decodes a data URL, validates it against the upload rules for
// its kind, and pins the payload.
func (s *Service) pinDataURL(ctx context.Context, dataURL, name string, kind pinata.Kind) (pinata.PinResult, error) {
	file, err := render.DataURLToFile(dataURL, name)
	if err != nil {
		return pinata.PinResult{}, domainerrors.Wrap(err, domainerrors.CodeInvalidInput, "malformed data URL")
	}
	if err := pinata.ValidateUpload(kind, file.MIME, int64(len(file.Data))); err != nil {
		return pinata.PinResult{}, err
	}
	return s.pinner.PinFile(ctx, file.Name, file.MIME, bytes.NewReader(file.Data))
}

// failWith swaps an error's message for a user-facing one. Wrap keeps the
// inner domain code when there is one.
func failWith(err error, msg string) error {
	return domainerrors.Wrap(err, domainerrors.CodeCollaboratorFailed, msg)
}

func documentName(req DocumentRequest) string {
	if req.DocumentName != "" {
		return req.DocumentName
	}
	return slug(req.FullName) + "-document"
}

func slug(name string) string {
	return strings.Join(strings.Fields(name), "-")
}

func nonEmptyEducation(entries []EducationEntry) []EducationEntry {
	out := make([]EducationEntry, 0, len(entries))
	for _, e := range entries {
		if e.Institution != "" || e.Program != "" {
			out = append(out, e)
		}
	}
	return out
}

func nonEmptyReferences(refs []Reference) []Reference {
	out := make([]Reference, 0, len(refs))
	for _, r := range refs {
		if r.Name != "" {
			out = append(out, r)
		}
	}
	return out
}

func blockNumber(receipt *rpc.Receipt) uint64 {
	if receipt == nil {
		return 0
	}
	n, err := strconv.ParseUint(strings.TrimPrefix(receipt.BlockNumber, "0x"), 16, 64)
	if err != nil {
		return 0
	}
	return n
}
